package services

import (
	"github.com/LoreKeep/initializers"
	"github.com/LoreKeep/models"
	"github.com/doug-martin/goqu/v9"
)

// GetConfig returns the community's configuration, or nil if the community
// has never been configured.
func GetConfig(communityID int64) (*models.Config, error) {
	var config models.Config
	found, err := initializers.DB.From("config").
		Where(goqu.C("community_id").Eq(communityID)).
		ScanStruct(&config)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &config, nil
}

// SetConfig upserts the community's configuration in a single statement. A
// row is created on the first write; after that only the fields present in
// the update are changed, the rest keep their values. ON CONFLICT makes two
// concurrent first writes serialize instead of racing the unique constraint.
func SetConfig(communityID int64, update models.ConfigUpdate) error {
	row := goqu.Record{"community_id": communityID}
	changed := goqu.Record{}
	if update.Lore_Channel_ID != nil {
		row["lore_channel_id"] = *update.Lore_Channel_ID
		changed["lore_channel_id"] = *update.Lore_Channel_ID
	}
	if update.Moment_Channel_ID != nil {
		row["moment_channel_id"] = *update.Moment_Channel_ID
		changed["moment_channel_id"] = *update.Moment_Channel_ID
	}
	if update.Verification_Channel_ID != nil {
		row["verification_channel_id"] = *update.Verification_Channel_ID
		changed["verification_channel_id"] = *update.Verification_Channel_ID
	}
	if update.Verifier_Role_ID != nil {
		row["verifier_role_id"] = *update.Verifier_Role_ID
		changed["verifier_role_id"] = *update.Verifier_Role_ID
	}

	insert := initializers.DB.Insert("config").Rows(row)
	if len(changed) == 0 {
		// Nothing to change on an existing row; a first write still creates it.
		insert = insert.OnConflict(goqu.DoNothing())
	} else {
		changed["datetime_update"] = goqu.L("NOW()")
		insert = insert.OnConflict(goqu.DoUpdate("community_id", changed))
	}

	_, err := insert.Executor().Exec()
	return err
}

// IsVerifier reports whether the member may decide submissions in the
// configured community. No configured verifier role means nobody may.
func IsVerifier(config *models.Config, member models.Member) bool {
	if config == nil || config.Verifier_Role_ID == nil {
		return false
	}
	return member.HasRole(*config.Verifier_Role_ID)
}
