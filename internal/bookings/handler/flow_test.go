package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	bookingserrors "bookingdesk/internal/bookings/errors"
	"bookingdesk/internal/bookings/notify"
	"bookingdesk/internal/bookings/render"
	"bookingdesk/internal/bookings/service"
	"bookingdesk/internal/bookings/validator"
	"bookingdesk/pkg/config"
	"bookingdesk/pkg/model"
)

// memoryStore is a minimal in-memory BookingStore with the same
// conditional-approve semantics as the real backends.
type memoryStore struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
}

func newMemoryStore() *memoryStore {
	return &memoryStore{bookings: make(map[string]*model.Booking)}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (s *memoryStore) Put(ctx context.Context, booking *model.Booking, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *booking
	s.bookings[booking.ID] = &copied
	return nil
}

func (s *memoryStore) Approve(ctx context.Context, id string, approvedAt time.Time, ttl time.Duration) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	if booking.Status != model.StatusPending {
		return nil, bookingserrors.ErrAlreadyApproved
	}
	booking.Status = model.StatusApproved
	booking.ApprovedAt = &approvedAt
	copied := *booking
	return &copied, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*notify.Message
}

func (n *recordingNotifier) Send(ctx context.Context, msg *notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) messages() []*notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*notify.Message{}, n.sent...)
}

func newFlowRouter(store *memoryStore, notifier *recordingNotifier) *httprouter.Router {
	log := testLogger()
	cfg := &config.Config{
		BookingTTL:    30 * 24 * time.Hour,
		EmailFrom:     "Acme <bookings@send.acme.test>",
		ConfirmFrom:   "Acme <bookings@acme.test>",
		OperatorEmail: "operator@acme.test",
		ReplyTo:       "operator@acme.test",
		Log:           log,
	}
	renderer := render.NewHTMLRenderer("Acme Consulting", "contact@acme.test")
	bookingValidator := validator.NewBookingValidator(log)

	intakeService := service.NewIntakeService(store, notifier, renderer, bookingValidator, cfg)
	approvalService := service.NewApprovalService(store, notifier, renderer, cfg)

	router := httprouter.New()
	NewBookingHandler(intakeService, "", log).RegisterRoutes(router)
	NewApprovalHandler(approvalService, renderer, log).RegisterRoutes(router)
	return router
}

func TestSubmitThenApproveFlow(t *testing.T) {
	store := newMemoryStore()
	notifier := &recordingNotifier{}
	router := newFlowRouter(store, notifier)

	// Submit the intake form.
	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader(validPayload()))
	req.Host = "booking.acme.test"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("intake: expected status 200, got %d", rec.Code)
	}
	var created BookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("intake: failed to decode response: %v", err)
	}
	if created.BookingID == "" {
		t.Fatal("intake: expected a booking ID")
	}

	// The operator email carries the approval link for this booking.
	operatorMail := notifier.messages()
	if len(operatorMail) != 1 {
		t.Fatalf("expected one operator email, got %d", len(operatorMail))
	}
	approvePath := "/approve/" + created.BookingID
	if !strings.Contains(operatorMail[0].HTML, "http://booking.acme.test"+approvePath) {
		t.Errorf("operator email missing approval link for %s", created.BookingID)
	}

	// First click approves and emails the requester.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, approvePath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Booking Approved!") {
		t.Error("approve: expected success page")
	}

	mail := notifier.messages()
	if len(mail) != 2 {
		t.Fatalf("expected operator + confirmation emails, got %d", len(mail))
	}
	confirmation := mail[1]
	if len(confirmation.To) != 1 || confirmation.To[0] != "ada@example.com" {
		t.Errorf("expected confirmation to the requester, got %v", confirmation.To)
	}

	stored, err := store.Get(context.Background(), created.BookingID)
	if err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	if !stored.Approved() || stored.ApprovedAt == nil {
		t.Error("expected the stored booking to be approved with a timestamp")
	}

	// Second click is report-only: no new email, no state change.
	firstApprovedAt := *stored.ApprovedAt
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, approvePath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("re-approve: expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Already Approved") {
		t.Error("re-approve: expected the already-approved page")
	}
	if got := len(notifier.messages()); got != 2 {
		t.Errorf("re-approve: expected no new email, got %d total", got)
	}

	stored, _ = store.Get(context.Background(), created.BookingID)
	if !stored.ApprovedAt.Equal(firstApprovedAt) {
		t.Error("re-approve: expected ApprovedAt to be unchanged")
	}
}

func TestConcurrentApprovalsSendOneEmail(t *testing.T) {
	store := newMemoryStore()
	notifier := &recordingNotifier{}
	router := newFlowRouter(store, notifier)

	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader(validPayload()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var created BookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode intake response: %v", err)
	}

	approvePath := "/approve/" + created.BookingID
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, approvePath, nil))
		}()
	}
	wg.Wait()

	// One operator email from intake plus exactly one confirmation.
	if got := len(notifier.messages()); got != 2 {
		t.Errorf("expected exactly one confirmation email, got %d total sends", got)
	}
}
