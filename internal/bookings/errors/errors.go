package errors

import "errors"

var (
	// ErrNotFound covers bookings that never existed and bookings the
	// store already expired; the two cases are indistinguishable.
	ErrNotFound = errors.New("booking not found")

	ErrAlreadyApproved = errors.New("booking already approved")

	ErrDecode = errors.New("stored booking record is not decodable")
)
