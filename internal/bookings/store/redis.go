package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingserrors "bookingdesk/internal/bookings/errors"
	"bookingdesk/pkg/model"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "booking:"

// maxApproveRetries bounds the optimistic-lock retry loop; a retry only
// happens when another writer touched the same key mid-transaction.
const maxApproveRetries = 3

type RedisBookingStore struct {
	client       *redis.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewRedisBookingStore(client *redis.Client, readTimeout, writeTimeout time.Duration) *RedisBookingStore {
	return &RedisBookingStore{
		client:       client,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func bookingKey(id string) string {
	return keyPrefix + id
}

func (s *RedisBookingStore) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *RedisBookingStore) Get(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, bookingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read booking: %w", err)
	}

	var booking model.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrDecode, err)
	}

	return &booking, nil
}

func (s *RedisBookingStore) Put(ctx context.Context, booking *model.Booking, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to serialize booking: %w", err)
	}

	if err := s.client.Set(ctx, bookingKey(booking.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking: %w", err)
	}

	return nil
}

// Approve uses WATCH-based optimistic locking so the pending check and the
// approved write form one atomic unit. A concurrent approval makes the
// transaction fail; the retry then observes the approved status.
func (s *RedisBookingStore) Approve(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	key := bookingKey(id)
	var approved model.Booking

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return bookingserrors.ErrNotFound
			}
			return fmt.Errorf("failed to read booking: %w", err)
		}

		var booking model.Booking
		if err := json.Unmarshal(data, &booking); err != nil {
			return fmt.Errorf("%w: %v", bookingserrors.ErrDecode, err)
		}

		if booking.Status != model.StatusPending {
			return bookingserrors.ErrAlreadyApproved
		}

		at := approvedAt
		booking.Status = model.StatusApproved
		booking.ApprovedAt = &at

		updated, err := json.Marshal(&booking)
		if err != nil {
			return fmt.Errorf("failed to serialize booking: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, ttl)
			return nil
		})
		if err != nil {
			return err
		}

		approved = booking
		return nil
	}

	for attempt := 0; attempt < maxApproveRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return &approved, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to approve booking after %d attempts: %w", maxApproveRetries, redis.TxFailedErr)
}

func (s *RedisBookingStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}
