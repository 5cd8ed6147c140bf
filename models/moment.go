package models

import "time"

// Moment is an accepted community memory. Immutable once created.
type Moment struct {
	Moment_ID       int       `json:"momentId" goqu:"skipinsert"`
	Community_ID    int64     `json:"communityId"`
	Content         string    `json:"content"`
	Submitted_By    int64     `json:"submittedBy"`
	Verified_By     int64     `json:"verifiedBy"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}
