package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "bookingdesk/internal/bookings/errors"
	"bookingdesk/internal/bookings/notify"
	"bookingdesk/internal/bookings/render"
	"bookingdesk/internal/bookings/store"
	"bookingdesk/pkg/config"
	apperrors "bookingdesk/pkg/errors"
	"bookingdesk/pkg/model"
)

type Outcome string

const (
	// OutcomeApproved: transition applied and confirmation email delivered.
	OutcomeApproved Outcome = "approved"
	// OutcomeApprovedSendFailed: transition applied but the confirmation
	// send failed; the approval is never rolled back.
	OutcomeApprovedSendFailed Outcome = "approved_send_failed"
	// OutcomeAlreadyApproved: the record was approved before this call;
	// report-only, no write and no email.
	OutcomeAlreadyApproved Outcome = "already_approved"
	// OutcomeNotFound: unknown or expired booking ID.
	OutcomeNotFound Outcome = "not_found"
)

type ApprovalResult struct {
	Outcome Outcome
	Booking *model.Booking

	// FormattedDate and FormattedTime are only set on the approved outcomes.
	FormattedDate string
	FormattedTime string
}

// ApprovalService applies the one allowed state transition. Repeated calls
// for the same ID are idempotent: only the first transition sends email.
type ApprovalService interface {
	Approve(ctx context.Context, id string) (*ApprovalResult, error)
}

type approvalService struct {
	store    store.BookingStore
	notifier notify.Notifier
	renderer render.Renderer
	cfg      *config.Config
}

func NewApprovalService(
	bookingStore store.BookingStore,
	notifier notify.Notifier,
	renderer render.Renderer,
	cfg *config.Config,
) ApprovalService {
	return &approvalService{
		store:    bookingStore,
		notifier: notifier,
		renderer: renderer,
		cfg:      cfg,
	}
}

func (s *approvalService) Approve(ctx context.Context, id string) (*ApprovalResult, error) {
	if id == "" {
		return &ApprovalResult{Outcome: OutcomeNotFound}, nil
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return &ApprovalResult{Outcome: OutcomeNotFound}, nil
		}
		s.cfg.Log.Error("Failed to look up booking for approval", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to process approval", err)
	}

	if existing.Approved() {
		return &ApprovalResult{Outcome: OutcomeAlreadyApproved, Booking: existing}, nil
	}

	// Conditional write: only one concurrent approval can win; the losers
	// observe the already-approved state.
	approvedAt := time.Now().UTC().Truncate(time.Millisecond)
	approved, err := s.store.Approve(ctx, id, approvedAt, s.cfg.BookingTTL)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrAlreadyApproved):
			return &ApprovalResult{Outcome: OutcomeAlreadyApproved, Booking: existing}, nil
		case errors.Is(err, bookingserrors.ErrNotFound):
			return &ApprovalResult{Outcome: OutcomeNotFound}, nil
		}
		s.cfg.Log.Error("Failed to approve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to process approval", err)
	}

	s.cfg.Log.Info("Booking approved", "id", id, "approved_at", approvedAt)

	formattedDate, formattedTime, err := render.FormatSchedule(approved.Date, approved.Time)
	if err != nil {
		s.cfg.Log.Error("Failed to format schedule for confirmation email", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to process approval", err)
	}

	result := &ApprovalResult{
		Booking:       approved,
		FormattedDate: formattedDate,
		FormattedTime: formattedTime,
	}

	if err := s.sendConfirmation(ctx, approved, formattedDate, formattedTime); err != nil {
		s.cfg.Log.Error("Confirmation email failed; approval stands",
			"id", id,
			"email", approved.Email,
			"error", err,
		)
		result.Outcome = OutcomeApprovedSendFailed
		return result, nil
	}

	result.Outcome = OutcomeApproved
	return result, nil
}

func (s *approvalService) sendConfirmation(ctx context.Context, booking *model.Booking, formattedDate, formattedTime string) error {
	html, err := s.renderer.ConfirmationEmail(render.ConfirmationEmailData{
		Name:     booking.Name,
		Date:     formattedDate,
		Time:     formattedTime,
		Duration: booking.Duration,
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return s.notifier.Send(ctx, &notify.Message{
		From:    s.cfg.ConfirmFrom,
		To:      []string{booking.Email},
		Subject: fmt.Sprintf("Meeting Confirmed - %s at %s", formattedDate, formattedTime),
		HTML:    html,
		ReplyTo: s.cfg.ReplyTo,
	})
}
