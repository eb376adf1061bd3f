package waitlist

import "errors"

var (
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")
	ErrExecQuery  = errors.New("waitlist.repository: failed to execute query")
	ErrScanRow    = errors.New("waitlist.repository: failed to scan row")
)
