package draft

import "errors"

var (
	// ErrDraftNotFound is returned when the draft does not exist or has expired
	ErrDraftNotFound = errors.New("draft.repository: draft not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("draft.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails
	ErrExecQuery = errors.New("draft.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("draft.repository: failed to scan row")

	// ErrCodec is returned when a draft cannot be encoded or decoded
	ErrCodec = errors.New("draft.repository: failed to encode or decode draft")

	// ErrCache is returned when redis fails
	ErrCache = errors.New("draft.repository: cache error")
)
