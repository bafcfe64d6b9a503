package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/apperr"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// NoContent sends a 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Conflict sends a 409 with a human-readable reason.
func Conflict(w http.ResponseWriter, reason string) {
	write(w, http.StatusConflict, envelope{Status: http.StatusConflict, Message: reason})
}

// FromError maps a service error onto the matching HTTP response.
// Validation errors become a 422 with the field map, conflicts a 409 and
// missing records a 404. Anything else is a 500 with a generic message.
func FromError(w http.ResponseWriter, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		ValidationError(w, ve.Fields)
		return
	}

	var ce *apperr.ConflictError
	if errors.As(err, &ce) {
		Conflict(w, ce.Reason)
		return
	}

	var ne *apperr.NotFoundError
	if errors.As(err, &ne) {
		Error(w, http.StatusNotFound, ne.Error())
		return
	}

	Error(w, http.StatusInternalServerError, "Internal Server Error")
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
