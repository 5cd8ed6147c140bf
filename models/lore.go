package models

import "time"

// Lore is the single current canonical document for a community. The version
// starts at 1 and increments on every accepted lore submission, so
// current_version - 1 always equals the number of lore_version rows.
type Lore struct {
	Lore_ID         int       `json:"loreId" goqu:"skipinsert"`
	Community_ID    int64     `json:"communityId"`
	Content         string    `json:"content"`
	Current_Version int       `json:"currentVersion"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

// LoreVersion is a snapshot of the document as it existed immediately before
// an overwrite. Append-only.
type LoreVersion struct {
	Lore_Version_ID            int       `json:"loreVersionId" goqu:"skipinsert"`
	Community_ID               int64     `json:"communityId"`
	Version                    int       `json:"version"`
	Content                    string    `json:"content"`
	Created_By                 int64     `json:"createdBy"`
	Created_From_Submission_ID *int      `json:"createdFromSubmissionId"`
	Datetime_Create            time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}
