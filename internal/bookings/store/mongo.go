package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "bookingdesk/internal/bookings/errors"
	"bookingdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Bookings"

// bookingDocument wraps the booking record with the expiry marker the TTL
// index removes documents by.
type bookingDocument struct {
	model.Booking `bson:",inline"`
	ExpiresAt     time.Time `bson:"expires_at"`
}

type MongoBookingStore struct {
	collection   *mongo.Collection
	client       *mongo.Client
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoBookingStore(client *mongo.Client, database string, readTimeout, writeTimeout time.Duration) *MongoBookingStore {
	return &MongoBookingStore{
		collection:   client.Database(database).Collection(CollectionName),
		client:       client,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// EnsureIndexes creates the TTL index that implements the retention window.
// Mongo's expiry sweep runs periodically, so Get double-checks expires_at.
func (s *MongoBookingStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create TTL index: %w", err)
	}
	return nil
}

func (s *MongoBookingStore) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoBookingStore) Get(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()

	var doc bookingDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	if time.Now().After(doc.ExpiresAt) {
		return nil, bookingserrors.ErrNotFound
	}

	booking := doc.Booking
	return &booking, nil
}

func (s *MongoBookingStore) Put(ctx context.Context, booking *model.Booking, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := bookingDocument{
		Booking:   *booking,
		ExpiresAt: time.Now().Add(ttl),
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": booking.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store booking: %w", err)
	}

	return nil
}

// Approve performs the pending -> approved transition as a single filtered
// FindOneAndUpdate, so two concurrent approvals can never both match.
func (s *MongoBookingStore) Approve(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx, s.writeTimeout)
	defer cancel()

	filter := bson.M{
		"_id":    id,
		"status": model.StatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      model.StatusApproved,
			"approved_at": approvedAt,
			"expires_at":  approvedAt.Add(ttl),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDocument
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		booking := doc.Booking
		return &booking, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to approve booking: %w", err)
	}

	// No pending record matched: either it is already approved or it is gone.
	existing, getErr := s.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Approved() {
		return nil, bookingserrors.ErrAlreadyApproved
	}
	return nil, bookingserrors.ErrNotFound
}

func (s *MongoBookingStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.readTimeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}
