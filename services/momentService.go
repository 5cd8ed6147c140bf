package services

import (
	"math/rand"

	"github.com/LoreKeep/initializers"
	"github.com/LoreKeep/models"
	"github.com/doug-martin/goqu/v9"
)

// ListMoments returns the community's moments newest first. limit and offset
// page through the full archive; limit values outside 1..100 fall back to 10.
func ListMoments(communityID int64, limit int, offset int) ([]models.Moment, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var moments []models.Moment
	err := initializers.DB.From("moment").
		Where(goqu.C("community_id").Eq(communityID)).
		Order(goqu.C("datetime_create").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ScanStructs(&moments)
	if err != nil {
		return nil, err
	}
	if moments == nil {
		moments = []models.Moment{}
	}
	return moments, nil
}

// RandomMoment returns one moment chosen uniformly from the community's
// archive, or nil when the archive is empty. Selection is count + random
// offset so every row has the same chance regardless of insert order.
func RandomMoment(communityID int64) (*models.Moment, error) {
	var count int64
	_, err := initializers.DB.From("moment").
		Select(goqu.COUNT("*")).
		Where(goqu.C("community_id").Eq(communityID)).
		ScanVal(&count)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	var moment models.Moment
	found, err := initializers.DB.From("moment").
		Where(goqu.C("community_id").Eq(communityID)).
		Order(goqu.C("moment_id").Asc()).
		Offset(uint(rand.Int63n(count))).
		Limit(1).
		ScanStruct(&moment)
	if err != nil {
		return nil, err
	}
	if !found {
		// The archive shrank between the two queries; moments are never
		// deleted, so this only happens in tests with inconsistent mocks.
		return nil, nil
	}
	return &moment, nil
}
