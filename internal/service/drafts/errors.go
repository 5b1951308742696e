package drafts

import "errors"

var (
	// ErrDraftNotFound is returned when the draft does not exist or expired
	ErrDraftNotFound = errors.New("drafts: draft not found")

	// ErrAccessDenied is returned when the draft belongs to another user
	ErrAccessDenied = errors.New("drafts: access denied")

	// ErrInternal is returned for storage failures
	ErrInternal = errors.New("drafts: internal error")
)
