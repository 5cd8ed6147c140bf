package services

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LoreKeep/initializers"
	"github.com/LoreKeep/models"
	"github.com/doug-martin/goqu/v9"
)

const (
	testCommunityID    int64 = 100200300400
	testVerifierRoleID int64 = 700800900
)

// setupTestDB swaps the global DB for a sqlmock instance
func setupTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	goquDB := goqu.New("postgres", db)

	originalDB := initializers.DB
	initializers.DB = goquDB

	cleanup := func() {
		db.Close()
		initializers.DB = originalDB
	}

	return mock, cleanup
}

// fakePresenter records render and update calls for assertions
type fakePresenter struct {
	presented  []VerificationCard
	channels   []int64
	updated    []string
	statuses   []string
	presentErr error
	updateErr  error
}

func (f *fakePresenter) PresentForVerification(channelID int64, card VerificationCard) (string, error) {
	if f.presentErr != nil {
		return "", f.presentErr
	}
	f.presented = append(f.presented, card)
	f.channels = append(f.channels, channelID)
	return "msg-ref-1", nil
}

func (f *fakePresenter) UpdatePresentation(messageRef string, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, messageRef)
	f.statuses = append(f.statuses, status)
	return nil
}

// setupFakePresenter swaps the global presenter for a recording fake
func setupFakePresenter() (*fakePresenter, func()) {
	fake := &fakePresenter{}
	original := GetPresenter()
	SetPresenter(fake)
	return fake, func() { SetPresenter(original) }
}

func testVerifier() models.Member {
	return models.Member{
		Member_ID:    444555666,
		Community_ID: testCommunityID,
		Role_IDs:     []int64{1010, testVerifierRoleID},
	}
}

func testMember() models.Member {
	return models.Member{
		Member_ID:    111222333,
		Community_ID: testCommunityID,
		Role_IDs:     []int64{1010, 2020},
	}
}

func configColumns() []string {
	return []string{
		"config_id", "community_id", "lore_channel_id", "moment_channel_id",
		"verification_channel_id", "verifier_role_id", "datetime_create", "datetime_update",
	}
}

// configRow returns a fully configured community row
func configRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(configColumns()).
		AddRow(1, testCommunityID, 1111, 2222, 3333, testVerifierRoleID, now, now)
}

// configRowWithout returns a config row with the named columns left NULL
func configRowWithout(nullColumns ...string) *sqlmock.Rows {
	now := time.Now()
	values := map[string]driver.Value{
		"config_id":               1,
		"community_id":            testCommunityID,
		"lore_channel_id":         int64(1111),
		"moment_channel_id":       int64(2222),
		"verification_channel_id": int64(3333),
		"verifier_role_id":        testVerifierRoleID,
		"datetime_create":         now,
		"datetime_update":         now,
	}
	for _, column := range nullColumns {
		values[column] = nil
	}

	row := make([]driver.Value, 0, len(configColumns()))
	for _, column := range configColumns() {
		row = append(row, values[column])
	}
	return sqlmock.NewRows(configColumns()).AddRow(row...)
}

func loreSubmissionColumns() []string {
	return []string{
		"lore_submission_id", "community_id", "author_id", "title", "content",
		"status", "submitted_at", "verified_at", "verified_by", "verification_message_ref",
	}
}

func pendingLoreSubmissionRow(id int, title string, content string) *sqlmock.Rows {
	return sqlmock.NewRows(loreSubmissionColumns()).
		AddRow(id, testCommunityID, 111222333, title, content, models.StatusPending, time.Now(), nil, nil, "msg-ref-1")
}

func momentSubmissionColumns() []string {
	return []string{
		"moment_submission_id", "community_id", "author_id", "content",
		"status", "submitted_at", "verified_at", "verified_by", "verification_message_ref", "moment_id",
	}
}

func pendingMomentSubmissionRow(id int, content string) *sqlmock.Rows {
	return sqlmock.NewRows(momentSubmissionColumns()).
		AddRow(id, testCommunityID, 111222333, content, models.StatusPending, time.Now(), nil, nil, "msg-ref-1", nil)
}

func loreColumns() []string {
	return []string{"lore_id", "community_id", "content", "current_version", "datetime_create", "datetime_update"}
}

func loreRow(content string, version int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(loreColumns()).
		AddRow(1, testCommunityID, content, version, now, now)
}

func momentColumns() []string {
	return []string{"moment_id", "community_id", "content", "submitted_by", "verified_by", "datetime_create"}
}
