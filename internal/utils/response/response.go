// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here — including
// the mapping from the core's error kinds to HTTP status codes, so a
// handler can hand any error to Error and get the right signal out.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campus-labs/student-registry/internal/storage"
)

// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a record, a listing, ...).
// Error responses always look like:
//
//	{ "status": "error", "error": "field Name is required" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Error writes err with the HTTP status implied by its kind:
//
//	validation failure  → 400 Bad Request (field-by-field message)
//	storage.ErrNotFound → 404 Not Found
//	index number taken  → 409 Conflict
//	anything else       → 500 with a generic body; unexpected internal
//	                      failures never leak detail to the client.
func Error(w http.ResponseWriter, err error) {
	var validateErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validateErrs):
		WriteJSON(w, http.StatusBadRequest, ValidationError(validateErrs))
	case errors.Is(err, storage.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, GeneralError(err))
	case errors.Is(err, storage.ErrIndexNumberTaken):
		WriteJSON(w, http.StatusConflict, GeneralError(err))
	default:
		WriteJSON(w, http.StatusInternalServerError, Response{
			Status: StatusError,
			Error:  "internal server error",
		})
	}
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for errors whose message is safe to show the client
// (bad input, not found, conflict).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. We convert each to a plain English sentence and join them
// with ", " so the client sees a single descriptive error string.
//
// Example output:
//
//	{ "status": "error", "error": "field Name is required, field GPA must be at most 4" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		// "required" — the field was missing from the payload
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "alphanum":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must contain only letters and digits", e.Field()))
		case "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "lte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		case "min":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must not be empty", e.Field()))
		case "datetime":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a date in YYYY-MM-DD form", e.Field()))
		// Catch-all for any other validation tag
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
