package http

import (
	"encoding/json"
	"net/http"

	apperrors "bookingdesk/pkg/errors"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps an application error to its HTTP status and the
// public {"error": ...} envelope. Internal error detail never reaches
// the response body.
func WriteError(w http.ResponseWriter, err error) error {
	var statusCode int
	var errResp ErrorResponse

	switch e := err.(type) {
	case *apperrors.AppError:
		statusCode = e.StatusCode()
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		// AppError.Message is the user-safe message; the wrapped cause
		// stays in e.Err and is only ever logged.
		errResp = ErrorResponse{Error: e.Message}
	default:
		statusCode = http.StatusInternalServerError
		errResp = ErrorResponse{Error: "Internal server error"}
	}

	return WriteJSON(w, statusCode, errResp)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, data)
}

func WriteHTML(w http.ResponseWriter, statusCode int, body []byte) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(body)
	return err
}
