package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	bookingserrors "bookingdesk/internal/bookings/errors"
	"bookingdesk/internal/bookings/notify"
	"bookingdesk/internal/bookings/render"
	"bookingdesk/pkg/config"
	apperrors "bookingdesk/pkg/errors"
	"bookingdesk/pkg/model"
)

func testApprovalService(store *mockBookingStore, notifier *mockNotifier, cfg *config.Config) ApprovalService {
	return NewApprovalService(
		store,
		notifier,
		render.NewHTMLRenderer("Acme Consulting", "contact@acme.test"),
		cfg,
	)
}

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID:        "abc-123",
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Date:      "2026-09-15",
		Time:      "14:30",
		Duration:  30,
		Reason:    "Quarterly strategy review",
		Status:    model.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func approvedCopy(b *model.Booking, at time.Time) *model.Booking {
	approved := *b
	approved.Status = model.StatusApproved
	approved.ApprovedAt = &at
	return &approved
}

func TestApprove_FirstClickApprovesAndSends(t *testing.T) {
	booking := pendingBooking()
	approveCalls := 0

	store := &mockBookingStore{
		getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return booking, nil
		},
		approveFunc: func(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
			approveCalls++
			return approvedCopy(booking, approvedAt), nil
		},
	}
	notifier := &mockNotifier{}
	cfg := testConfig()
	svc := testApprovalService(store, notifier, cfg)

	result, err := svc.Approve(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != OutcomeApproved {
		t.Fatalf("expected outcome %q, got %q", OutcomeApproved, result.Outcome)
	}
	if approveCalls != 1 {
		t.Errorf("expected one store transition, got %d", approveCalls)
	}
	if result.Booking.ApprovedAt == nil {
		t.Error("expected ApprovedAt to be set")
	}
	if result.FormattedDate != "Tuesday, September 15, 2026" {
		t.Errorf("unexpected formatted date: %q", result.FormattedDate)
	}
	if result.FormattedTime != "2:30 PM" {
		t.Errorf("unexpected formatted time: %q", result.FormattedTime)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.From != cfg.ConfirmFrom {
		t.Errorf("expected from %q, got %q", cfg.ConfirmFrom, msg.From)
	}
	if len(msg.To) != 1 || msg.To[0] != booking.Email {
		t.Errorf("expected recipient %q, got %v", booking.Email, msg.To)
	}
	if msg.ReplyTo != cfg.ReplyTo {
		t.Errorf("expected reply-to %q, got %q", cfg.ReplyTo, msg.ReplyTo)
	}
	wantSubject := "Meeting Confirmed - Tuesday, September 15, 2026 at 2:30 PM"
	if msg.Subject != wantSubject {
		t.Errorf("expected subject %q, got %q", wantSubject, msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Ada Lovelace") {
		t.Error("expected confirmation email to greet the requester")
	}
}

func TestApprove_SecondClickIsReportOnly(t *testing.T) {
	at := time.Now().UTC()
	booking := approvedCopy(pendingBooking(), at)

	approveCalled := false
	store := &mockBookingStore{
		getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return booking, nil
		},
		approveFunc: func(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
			approveCalled = true
			return nil, bookingserrors.ErrAlreadyApproved
		},
	}
	notifier := &mockNotifier{}
	svc := testApprovalService(store, notifier, testConfig())

	result, err := svc.Approve(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != OutcomeAlreadyApproved {
		t.Fatalf("expected outcome %q, got %q", OutcomeAlreadyApproved, result.Outcome)
	}
	if approveCalled {
		t.Error("expected no store transition for an already-approved booking")
	}
	if len(notifier.sent) != 0 {
		t.Errorf("expected no email on a repeated click, got %d", len(notifier.sent))
	}
	if result.Booking == nil || result.Booking.Name != "Ada Lovelace" {
		t.Error("expected the stored booking on the result")
	}
}

func TestApprove_ConcurrentLoserSeesAlreadyApproved(t *testing.T) {
	// The read races another approval: the record looks pending, but the
	// conditional write loses.
	booking := pendingBooking()
	store := &mockBookingStore{
		getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return booking, nil
		},
		approveFunc: func(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
			return nil, bookingserrors.ErrAlreadyApproved
		},
	}
	notifier := &mockNotifier{}
	svc := testApprovalService(store, notifier, testConfig())

	result, err := svc.Approve(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeAlreadyApproved {
		t.Fatalf("expected outcome %q, got %q", OutcomeAlreadyApproved, result.Outcome)
	}
	if len(notifier.sent) != 0 {
		t.Error("expected the losing request to send no email")
	}
}

func TestApprove_UnknownID(t *testing.T) {
	store := &mockBookingStore{}
	notifier := &mockNotifier{}
	svc := testApprovalService(store, notifier, testConfig())

	result, err := svc.Approve(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("expected outcome %q, got %q", OutcomeNotFound, result.Outcome)
	}
	if len(notifier.sent) != 0 {
		t.Error("expected no email for an unknown ID")
	}
}

func TestApprove_EmptyID(t *testing.T) {
	svc := testApprovalService(&mockBookingStore{}, &mockNotifier{}, testConfig())

	result, err := svc.Approve(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("expected outcome %q, got %q", OutcomeNotFound, result.Outcome)
	}
}

func TestApprove_SendFailureKeepsApproval(t *testing.T) {
	booking := pendingBooking()
	store := &mockBookingStore{
		getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return booking, nil
		},
		approveFunc: func(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
			return approvedCopy(booking, approvedAt), nil
		},
	}
	notifier := &mockNotifier{
		sendFunc: func(ctx context.Context, msg *notify.Message) error {
			return notify.ErrSendFailed
		},
	}
	svc := testApprovalService(store, notifier, testConfig())

	result, err := svc.Approve(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("expected approval to stand despite send failure, got: %v", err)
	}
	if result.Outcome != OutcomeApprovedSendFailed {
		t.Fatalf("expected outcome %q, got %q", OutcomeApprovedSendFailed, result.Outcome)
	}
	if result.Booking == nil || !result.Booking.Approved() {
		t.Error("expected the result to carry the approved booking")
	}
}

func TestApprove_StoreFailureIsInternal(t *testing.T) {
	store := &mockBookingStore{
		getFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	svc := testApprovalService(store, &mockNotifier{}, testConfig())

	_, err := svc.Approve(context.Background(), "abc-123")
	if err == nil {
		t.Fatal("expected error when the store is unreachable")
	}
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected internal error code, got %q", appErr.Code)
	}
}
