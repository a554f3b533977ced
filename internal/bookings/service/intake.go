package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookingdesk/internal/bookings/notify"
	"bookingdesk/internal/bookings/render"
	"bookingdesk/internal/bookings/store"
	"bookingdesk/internal/bookings/validator"
	"bookingdesk/pkg/config"
	apperrors "bookingdesk/pkg/errors"
	"bookingdesk/pkg/model"
	"bookingdesk/pkg/sanitizer"

	"github.com/google/uuid"
)

// IntakeService handles new booking submissions: validate, persist with the
// retention window, then notify the operator with an approval link.
type IntakeService interface {
	Create(ctx context.Context, req *model.BookingRequest, origin string) (*model.Booking, error)
}

type intakeService struct {
	store     store.BookingStore
	notifier  notify.Notifier
	renderer  render.Renderer
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewIntakeService(
	bookingStore store.BookingStore,
	notifier notify.Notifier,
	renderer render.Renderer,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) IntakeService {
	return &intakeService{
		store:     bookingStore,
		notifier:  notifier,
		renderer:  renderer,
		validator: bookingValidator,
		cfg:       cfg,
	}
}

func (s *intakeService) Create(ctx context.Context, req *model.BookingRequest, origin string) (*model.Booking, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		var validationErr validator.ValidationError
		if errors.As(err, &validationErr) {
			s.cfg.Log.Warn("Booking validation failed",
				"field", validationErr.Field,
				"error", validationErr.Message,
			)
			return nil, apperrors.InvalidInput(validationErr.Message)
		}
		return nil, apperrors.Internal("Failed to process booking request", err)
	}

	booking := &model.Booking{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Date:      req.Date,
		Time:      req.Time,
		Duration:  req.Duration,
		Reason:    req.Reason,
		Business:  req.Business,
		Notes:     req.Notes,
		Status:    model.StatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	// The write must succeed before intake reports success; the operator
	// notification below is best-effort.
	if err := s.store.Put(ctx, booking, s.cfg.BookingTTL); err != nil {
		s.cfg.Log.Error("Failed to store booking", "error", err)
		return nil, apperrors.Internal("Failed to process booking request", err)
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"date", booking.Date,
		"time", booking.Time,
	)

	s.notifyOperator(ctx, booking, origin)

	return booking, nil
}

// notifyOperator emails the approval link. A failed send is logged and
// swallowed: the booking is durably stored and can be approved manually
// or the notification retried out of band.
func (s *intakeService) notifyOperator(ctx context.Context, booking *model.Booking, origin string) {
	formattedDate, formattedTime, err := render.FormatSchedule(booking.Date, booking.Time)
	if err != nil {
		s.cfg.Log.Error("Failed to format booking schedule for operator email",
			"id", booking.ID,
			"error", err,
		)
		return
	}

	approveURL := fmt.Sprintf("%s/approve/%s", origin, booking.ID)

	html, err := s.renderer.OperatorEmail(render.OperatorEmailData{
		Name:       booking.Name,
		Business:   booking.Business,
		Email:      booking.Email,
		Date:       formattedDate,
		Time:       formattedTime,
		Duration:   booking.Duration,
		Reason:     booking.Reason,
		Notes:      booking.Notes,
		ApproveURL: approveURL,
	})
	if err != nil {
		s.cfg.Log.Error("Failed to render operator email", "id", booking.ID, "error", err)
		return
	}

	msg := &notify.Message{
		From:    s.cfg.EmailFrom,
		To:      []string{s.cfg.OperatorEmail},
		Subject: fmt.Sprintf("New Booking Request: %s - %s", booking.Name, formattedDate),
		HTML:    html,
	}

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.cfg.Log.Error("Operator notification failed; booking remains stored",
			"id", booking.ID,
			"error", err,
		)
	}
}

func (s *intakeService) sanitize(req *model.BookingRequest) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
	req.Time = sanitizer.TrimAndNormalize(req.Time)
	req.Reason = sanitizer.NormalizeMultiline(req.Reason)
	req.Business = sanitizer.NormalizeName(req.Business)
	req.Notes = sanitizer.NormalizeMultiline(req.Notes)
}
