package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

// ErrorResponse is the error body for every non-2xx JSON response.
// Field validation failures additionally carry "fieldName: reason" entries.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Fail(w http.ResponseWriter, status int, label, message string, fields ...string) {
	JSON(w, status, ErrorResponse{
		Status:  status,
		Error:   label,
		Message: message,
		Errors:  fields,
	})
}

// ValidationFailed reports request-body field errors as a 400.
func ValidationFailed(w http.ResponseWriter, fields []string) {
	Fail(w, http.StatusBadRequest, "Validation Error", "Invalid input data", fields...)
}

// Err maps a service error to its HTTP status and error body.
func Err(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		if fields := apperr.FieldsOf(err); len(fields) > 0 {
			ValidationFailed(w, fields)
			return
		}
		Fail(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Fail(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		Fail(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, apperr.ErrConflict):
		Fail(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, apperr.ErrTooLarge):
		Fail(w, http.StatusRequestEntityTooLarge, "Payload Too Large", err.Error())
	default:
		Fail(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}

// DecodeJSON decodes a request body, reporting malformed JSON as ErrInvalid.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalidf("Invalid JSON request body")
	}
	return nil
}
