package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	ErrBuildQuery = errors.New("booking.repository: failed to build query")
	ErrExecQuery  = errors.New("booking.repository: failed to execute query")
	ErrScanRow    = errors.New("booking.repository: failed to scan row")
)
