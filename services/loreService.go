package services

import (
	"errors"
	"fmt"

	"github.com/LoreKeep/initializers"
	"github.com/LoreKeep/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a Postgres unique_violation.
// Losing an insert race is the only storage error that means "conflict";
// everything else is a real failure and must not be retried.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// composeLore appends an accepted submission to the existing document text.
// The separator matches what readers of the document expect between entries.
func composeLore(existing string, title string, content string) string {
	if existing == "" {
		return fmt.Sprintf("**%s**\n%s", title, content)
	}
	return fmt.Sprintf("%s\n\n---\n\n**%s**\n%s", existing, title, content)
}

// mergeLore folds an accepted submission into the community's lore document.
// Must run inside the decide transaction so the submission status update and
// the document rewrite commit or roll back together.
//
// The version column is the optimistic lock: the snapshot insert and the
// conditional update both key on the version read at the start, so a
// concurrent accept that commits first makes this one fail with
// ErrMergeConflict instead of silently losing its update.
func mergeLore(tx *goqu.TxDatabase, submission models.LoreSubmission) error {
	var current models.Lore
	found, err := tx.From("lore").
		Where(goqu.C("community_id").Eq(submission.Community_ID)).
		ScanStruct(&current)
	if err != nil {
		return err
	}

	if !found {
		insert := tx.Insert("lore").Rows(goqu.Record{
			"community_id":    submission.Community_ID,
			"content":         composeLore("", submission.Title, submission.Content),
			"current_version": 1,
		})
		if _, err := insert.Executor().Exec(); err != nil {
			if isUniqueViolation(err) {
				// A concurrent first accept hit the unique community constraint.
				return ErrMergeConflict
			}
			return err
		}
		return nil
	}

	// Snapshot the document as it exists right now, under the version it had.
	snapshot := tx.Insert("lore_version").Rows(goqu.Record{
		"community_id":               submission.Community_ID,
		"version":                    current.Current_Version,
		"content":                    current.Content,
		"created_by":                 submission.Author_ID,
		"created_from_submission_id": submission.Lore_Submission_ID,
	})
	if _, err := snapshot.Executor().Exec(); err != nil {
		if isUniqueViolation(err) {
			// A concurrent accept already archived this version.
			return ErrMergeConflict
		}
		return err
	}

	update := tx.Update("lore").
		Set(goqu.Record{
			"content":         composeLore(current.Content, submission.Title, submission.Content),
			"current_version": current.Current_Version + 1,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(
			goqu.C("community_id").Eq(submission.Community_ID),
			goqu.C("current_version").Eq(current.Current_Version),
		)

	result, err := update.Executor().Exec()
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrMergeConflict
	}
	return nil
}

// CurrentLore returns the community's lore document, or nil if nothing has
// been accepted yet.
func CurrentLore(communityID int64) (*models.Lore, error) {
	var lore models.Lore
	found, err := initializers.DB.From("lore").
		Where(goqu.C("community_id").Eq(communityID)).
		ScanStruct(&lore)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &lore, nil
}

// LoreHistory returns the community's archived versions, newest first.
func LoreHistory(communityID int64) ([]models.LoreVersion, error) {
	var versions []models.LoreVersion
	err := initializers.DB.From("lore_version").
		Where(goqu.C("community_id").Eq(communityID)).
		Order(goqu.C("version").Desc()).
		ScanStructs(&versions)
	if err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []models.LoreVersion{}
	}
	return versions, nil
}
