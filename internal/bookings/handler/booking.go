package handler

import (
	"encoding/json"
	"net/http"

	"bookingdesk/internal/bookings/service"
	httputil "bookingdesk/pkg/http"
	"bookingdesk/pkg/logger"
	"bookingdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

type BookingHandler struct {
	service       service.IntakeService
	publicBaseURL string
	log           *logger.Logger
}

func NewBookingHandler(service service.IntakeService, publicBaseURL string, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:       service,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req, h.origin(r))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, BookingResponse{
		Success:   true,
		Message:   "Booking request submitted successfully",
		BookingID: booking.ID,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

// origin resolves the base URL embedded in approval links: the configured
// public URL when set, otherwise the URL this request arrived on.
func (h *BookingHandler) origin(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/booking", h.Create)
}
