package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"bookingdesk/internal/bookings/render"
	"bookingdesk/internal/bookings/service"
	httputil "bookingdesk/pkg/http"
	"bookingdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ApprovalHandler struct {
	service  service.ApprovalService
	renderer render.Renderer
	log      *logger.Logger
}

func NewApprovalHandler(service service.ApprovalService, renderer render.Renderer, log *logger.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		service:  service,
		renderer: renderer,
		log:      log,
	}
}

// Approve handles the one-click approval link. The response is always an
// HTML status page; repeated clicks on the same link are report-only.
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	result, err := h.service.Approve(r.Context(), id)
	if err != nil {
		h.writePage(w, http.StatusInternalServerError, render.KindError,
			"Error",
			template.HTML("Something went wrong processing this approval. Please try again."),
		)
		return
	}

	switch result.Outcome {
	case service.OutcomeNotFound:
		h.writePage(w, http.StatusNotFound, render.KindError,
			"Booking Not Found",
			template.HTML("This booking request has expired or does not exist."),
		)

	case service.OutcomeAlreadyApproved:
		h.writePage(w, http.StatusOK, render.KindInfo,
			"Already Approved",
			template.HTML(fmt.Sprintf("This booking with %s was already approved.",
				template.HTMLEscapeString(result.Booking.Name))),
		)

	case service.OutcomeApprovedSendFailed:
		h.writePage(w, http.StatusOK, render.KindWarning,
			"Approved with Warning",
			template.HTML(fmt.Sprintf("Booking approved, but confirmation email to %s may have failed. Please contact them directly.",
				template.HTMLEscapeString(result.Booking.Email))),
		)

	case service.OutcomeApproved:
		h.writePage(w, http.StatusOK, render.KindSuccess,
			"Booking Approved!",
			template.HTML(fmt.Sprintf(
				"Confirmation email sent to %s.<br><br><strong>Meeting Details:</strong><br>%s<br>%s at %s<br>%d minutes",
				template.HTMLEscapeString(result.Booking.Email),
				template.HTMLEscapeString(result.Booking.Name),
				result.FormattedDate,
				result.FormattedTime,
				result.Booking.Duration,
			)),
		)

	default:
		h.log.Error("Unknown approval outcome", "id", id, "outcome", result.Outcome)
		h.writePage(w, http.StatusInternalServerError, render.KindError,
			"Error",
			template.HTML("Something went wrong processing this approval. Please try again."),
		)
	}
}

func (h *ApprovalHandler) writePage(w http.ResponseWriter, statusCode int, kind render.PageKind, title string, message template.HTML) {
	body, err := h.renderer.StatusPage(kind, title, message)
	if err != nil {
		h.log.Error("failed to render status page", "handler", "Approve", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := httputil.WriteHTML(w, statusCode, body); err != nil {
		h.log.Error("failed to write HTML response", "handler", "Approve", "error", err)
	}
}

func (h *ApprovalHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/approve/:id", h.Approve)
}
