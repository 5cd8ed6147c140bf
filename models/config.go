package models

import "time"

// Config holds the per-community channel and role wiring. A row is created
// lazily on the first configuration write; unset fields stay NULL until an
// admin sets them.
type Config struct {
	Config_ID               int       `json:"configId" goqu:"skipinsert"`
	Community_ID            int64     `json:"communityId"`
	Lore_Channel_ID         *int64    `json:"loreChannelId"`
	Moment_Channel_ID       *int64    `json:"momentChannelId"`
	Verification_Channel_ID *int64    `json:"verificationChannelId"`
	Verifier_Role_ID        *int64    `json:"verifierRoleId"`
	Datetime_Create         time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update         time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

// ConfigUpdate carries a partial configuration write. Nil fields are left
// untouched on update.
type ConfigUpdate struct {
	Lore_Channel_ID         *int64 `json:"loreChannelId"`
	Moment_Channel_ID       *int64 `json:"momentChannelId"`
	Verification_Channel_ID *int64 `json:"verificationChannelId"`
	Verifier_Role_ID        *int64 `json:"verifierRoleId"`
}
