package services

import "errors"

// Workflow error kinds. Controllers map these to HTTP statuses with
// errors.Is; anything not listed here is treated as a storage failure.
var (
	// ErrNotConfigured means a required channel or role is missing from the
	// community's configuration.
	ErrNotConfigured = errors.New("community is not configured for this action")

	// ErrUnauthorized means the acting member does not hold the community's
	// verifier role.
	ErrUnauthorized = errors.New("member does not have permission to verify submissions")

	// ErrAlreadyDecided means the submission left the pending state before
	// this decision landed.
	ErrAlreadyDecided = errors.New("submission has already been decided")

	// ErrNotFound means the submission or community record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrMergeConflict means a concurrent lore update won the version race.
	// Surfaced only after the internal retry also loses.
	ErrMergeConflict = errors.New("concurrent lore update detected")
)
