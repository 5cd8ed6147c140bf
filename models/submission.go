package models

import "time"

// Submission status constants
const (
	// StatusPending marks a submission awaiting a verifier decision.
	StatusPending = "pending"

	// StatusAccepted marks a submission a verifier accepted. Terminal.
	StatusAccepted = "accepted"

	// StatusRejected marks a submission a verifier rejected. Terminal.
	StatusRejected = "rejected"
)

// Decision is an accept/reject choice decoded once at the HTTP boundary.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Valid reports whether d is one of the two known decisions.
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// LoreSubmission is a proposed lore addition. Created pending, decided
// exactly once, never deleted.
type LoreSubmission struct {
	Lore_Submission_ID       int        `json:"loreSubmissionId" goqu:"skipinsert"`
	Community_ID             int64      `json:"communityId"`
	Author_ID                int64      `json:"authorId"`
	Title                    string     `json:"title"`
	Content                  string     `json:"content"`
	Status                   string     `json:"status" goqu:"skipinsert"`
	Submitted_At             time.Time  `json:"submittedAt" goqu:"skipinsert"`
	Verified_At              *time.Time `json:"verifiedAt"`
	Verified_By              *int64     `json:"verifiedBy"`
	Verification_Message_Ref *string    `json:"verificationMessageRef"`
}

// MomentSubmission is a proposed community moment. Moment_ID is set when the
// submission is accepted and links to the archived moment.
type MomentSubmission struct {
	Moment_Submission_ID     int        `json:"momentSubmissionId" goqu:"skipinsert"`
	Community_ID             int64      `json:"communityId"`
	Author_ID                int64      `json:"authorId"`
	Content                  string     `json:"content"`
	Status                   string     `json:"status" goqu:"skipinsert"`
	Submitted_At             time.Time  `json:"submittedAt" goqu:"skipinsert"`
	Verified_At              *time.Time `json:"verifiedAt"`
	Verified_By              *int64     `json:"verifiedBy"`
	Verification_Message_Ref *string    `json:"verificationMessageRef"`
	Moment_ID                *int       `json:"momentId"`
}
