package store

import (
	"context"
	"time"

	"bookingdesk/pkg/model"
)

// BookingStore is a key-value collaborator keyed by booking ID. Every write
// carries a time-to-live; expiry is the only way a record is ever removed.
type BookingStore interface {
	// Get returns the booking stored under id, or bookingserrors.ErrNotFound
	// when the record never existed or has expired.
	Get(ctx context.Context, id string) (*model.Booking, error)

	// Put stores the booking under its ID with the given retention window,
	// replacing any existing record.
	Put(ctx context.Context, booking *model.Booking, ttl time.Duration) error

	// Approve atomically transitions the stored record from pending to
	// approved, sets approvedAt, and resets the retention window. It returns
	// the updated record, bookingserrors.ErrAlreadyApproved when the stored
	// status is no longer pending, or bookingserrors.ErrNotFound. The
	// check-and-set is a single conditional write on both backends, so
	// concurrent approval requests produce exactly one transition.
	Approve(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error)

	Ping(ctx context.Context) error
}
