package services

import (
	"errors"
	"log"

	"github.com/LoreKeep/initializers"
	"github.com/LoreKeep/models"
	"github.com/doug-martin/goqu/v9"
)

// The workflow engine. Submissions are created pending, decided exactly
// once, and never deleted. Status transitions happen only here.

// SubmitLore creates a pending lore submission and sends it to the
// community's verification channel. Returns the new submission id.
func SubmitLore(communityID int64, authorID int64, title string, content string) (int, error) {
	config, err := GetConfig(communityID)
	if err != nil {
		return 0, err
	}
	if config == nil || config.Lore_Channel_ID == nil || config.Verification_Channel_ID == nil {
		return 0, ErrNotConfigured
	}

	insert := initializers.DB.Insert("lore_submission").
		Rows(goqu.Record{
			"community_id": communityID,
			"author_id":    authorID,
			"title":        title,
			"content":      content,
		}).
		Returning("lore_submission_id")

	var submissionID int
	if _, err := insert.Executor().ScanVal(&submissionID); err != nil {
		return 0, err
	}

	card := VerificationCard{
		Kind:         "lore",
		SubmissionID: submissionID,
		AuthorID:     authorID,
		Title:        title,
		Content:      content,
	}
	if err := presentSubmission("lore_submission", "lore_submission_id", submissionID, *config.Verification_Channel_ID, card); err != nil {
		return submissionID, err
	}

	return submissionID, nil
}

// SubmitMoment creates a pending moment submission and sends it to the
// community's verification channel. Returns the new submission id.
func SubmitMoment(communityID int64, authorID int64, content string) (int, error) {
	config, err := GetConfig(communityID)
	if err != nil {
		return 0, err
	}
	if config == nil || config.Moment_Channel_ID == nil || config.Verification_Channel_ID == nil {
		return 0, ErrNotConfigured
	}

	insert := initializers.DB.Insert("moment_submission").
		Rows(goqu.Record{
			"community_id": communityID,
			"author_id":    authorID,
			"content":      content,
		}).
		Returning("moment_submission_id")

	var submissionID int
	if _, err := insert.Executor().ScanVal(&submissionID); err != nil {
		return 0, err
	}

	card := VerificationCard{
		Kind:         "moment",
		SubmissionID: submissionID,
		AuthorID:     authorID,
		Content:      content,
	}
	if err := presentSubmission("moment_submission", "moment_submission_id", submissionID, *config.Verification_Channel_ID, card); err != nil {
		return submissionID, err
	}

	return submissionID, nil
}

// presentSubmission renders the verification prompt and writes the returned
// message ref back onto the submission row. The submission stays pending
// either way; a missing ref only means the prompt was not delivered.
func presentSubmission(table string, idColumn string, submissionID int, channelID int64, card VerificationCard) error {
	p := GetPresenter()
	if p == nil {
		log.Printf("no presenter configured, %s %d has no verification prompt", table, submissionID)
		return nil
	}

	messageRef, err := p.PresentForVerification(channelID, card)
	if err != nil {
		return err
	}

	_, err = initializers.DB.Update(table).
		Set(goqu.Record{"verification_message_ref": messageRef}).
		Where(goqu.C(idColumn).Eq(submissionID)).
		Executor().Exec()
	if err != nil {
		log.Printf("failed to store message ref for %s %d: %v", table, submissionID, err)
	}
	return nil
}

// GetLoreSubmission loads a lore submission by id.
func GetLoreSubmission(submissionID int) (*models.LoreSubmission, error) {
	var submission models.LoreSubmission
	found, err := initializers.DB.From("lore_submission").
		Where(goqu.C("lore_submission_id").Eq(submissionID)).
		ScanStruct(&submission)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &submission, nil
}

// GetMomentSubmission loads a moment submission by id.
func GetMomentSubmission(submissionID int) (*models.MomentSubmission, error) {
	var submission models.MomentSubmission
	found, err := initializers.DB.From("moment_submission").
		Where(goqu.C("moment_submission_id").Eq(submissionID)).
		ScanStruct(&submission)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &submission, nil
}

// PendingLoreSubmissions returns the community's undecided lore submissions,
// oldest first.
func PendingLoreSubmissions(communityID int64) ([]models.LoreSubmission, error) {
	var submissions []models.LoreSubmission
	err := initializers.DB.From("lore_submission").
		Where(
			goqu.C("community_id").Eq(communityID),
			goqu.C("status").Eq(models.StatusPending),
		).
		Order(goqu.C("submitted_at").Asc()).
		ScanStructs(&submissions)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.LoreSubmission{}
	}
	return submissions, nil
}

// PendingMomentSubmissions returns the community's undecided moment
// submissions, oldest first.
func PendingMomentSubmissions(communityID int64) ([]models.MomentSubmission, error) {
	var submissions []models.MomentSubmission
	err := initializers.DB.From("moment_submission").
		Where(
			goqu.C("community_id").Eq(communityID),
			goqu.C("status").Eq(models.StatusPending),
		).
		Order(goqu.C("submitted_at").Asc()).
		ScanStructs(&submissions)
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []models.MomentSubmission{}
	}
	return submissions, nil
}

// DecideLore applies a verifier's accept/reject to a lore submission. Accept
// also merges the submission into the community's lore document; the status
// transition and the merge commit or roll back together.
func DecideLore(submissionID int, verifier models.Member, decision models.Decision) error {
	submission, err := GetLoreSubmission(submissionID)
	if err != nil {
		return err
	}

	config, err := GetConfig(submission.Community_ID)
	if err != nil {
		return err
	}
	if !IsVerifier(config, verifier) {
		return ErrUnauthorized
	}

	err = decideLoreOnce(*submission, verifier, decision)
	if errors.Is(err, ErrMergeConflict) {
		// Another accept for the same community committed first. The whole
		// transaction rolled back, so the submission is still pending and a
		// single retry against the new document version is safe.
		err = decideLoreOnce(*submission, verifier, decision)
	}
	if err != nil {
		return err
	}

	lockPresentation("lore submission", submission.Verification_Message_Ref, decision)
	return nil
}

func decideLoreOnce(submission models.LoreSubmission, verifier models.Member, decision models.Decision) error {
	tx, err := initializers.DB.Begin()
	if err != nil {
		return err
	}

	return tx.Wrap(func() error {
		if err := transitionStatus(tx, "lore_submission", "lore_submission_id", submission.Lore_Submission_ID, verifier, decision); err != nil {
			return err
		}
		if decision == models.DecisionAccept {
			return mergeLore(tx, submission)
		}
		return nil
	})
}

// DecideMoment applies a verifier's accept/reject to a moment submission.
// Accept archives the moment and records its id on the submission, in the
// same transaction as the status transition.
func DecideMoment(submissionID int, verifier models.Member, decision models.Decision) error {
	submission, err := GetMomentSubmission(submissionID)
	if err != nil {
		return err
	}

	config, err := GetConfig(submission.Community_ID)
	if err != nil {
		return err
	}
	if !IsVerifier(config, verifier) {
		return ErrUnauthorized
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		return err
	}

	err = tx.Wrap(func() error {
		if err := transitionStatus(tx, "moment_submission", "moment_submission_id", submission.Moment_Submission_ID, verifier, decision); err != nil {
			return err
		}
		if decision != models.DecisionAccept {
			return nil
		}

		insert := tx.Insert("moment").
			Rows(goqu.Record{
				"community_id": submission.Community_ID,
				"content":      submission.Content,
				"submitted_by": submission.Author_ID,
				"verified_by":  verifier.Member_ID,
			}).
			Returning("moment_id")

		var momentID int
		if _, err := insert.Executor().ScanVal(&momentID); err != nil {
			return err
		}

		_, err := tx.Update("moment_submission").
			Set(goqu.Record{"moment_id": momentID}).
			Where(goqu.C("moment_submission_id").Eq(submission.Moment_Submission_ID)).
			Executor().Exec()
		return err
	})
	if err != nil {
		return err
	}

	lockPresentation("moment submission", submission.Verification_Message_Ref, decision)
	return nil
}

// transitionStatus is the one conditional update allowed to move a
// submission out of pending. Zero rows affected means another verifier got
// there first.
func transitionStatus(tx *goqu.TxDatabase, table string, idColumn string, submissionID int, verifier models.Member, decision models.Decision) error {
	status := models.StatusRejected
	if decision == models.DecisionAccept {
		status = models.StatusAccepted
	}

	update := tx.Update(table).
		Set(goqu.Record{
			"status":      status,
			"verified_by": verifier.Member_ID,
			"verified_at": goqu.L("NOW()"),
		}).
		Where(
			goqu.C(idColumn).Eq(submissionID),
			goqu.C("status").Eq(models.StatusPending),
		)

	result, err := update.Executor().Exec()
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrAlreadyDecided
	}
	return nil
}

// lockPresentation marks the verification prompt decided and strips its
// decision buttons. Presentation is not part of the state machine, so a
// failure here is logged and the decision stands.
func lockPresentation(what string, messageRef *string, decision models.Decision) {
	p := GetPresenter()
	if p == nil || messageRef == nil {
		return
	}

	status := models.StatusRejected
	if decision == models.DecisionAccept {
		status = models.StatusAccepted
	}
	if err := p.UpdatePresentation(*messageRef, status); err != nil {
		log.Printf("failed to update %s presentation %s: %v", what, *messageRef, err)
	}
}
