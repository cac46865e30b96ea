// Package student contains all HTTP handlers related to the student
// record resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a store.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (the storage.Storage interface)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function closes over the outer parameters, it can
// access the store even after the factory call has returned:
//
//	router.HandleFunc("POST /api/students", student.New(store))
//	//                                              ^^^^^^^^^^
//	//                         New(store) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
//
// Handlers own the HTTP framing only: decode the body, parse the path
// and query string, call the store or query engine, and map the outcome
// to a status code via the response package. All record invariants are
// enforced by the store.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campus-labs/student-registry/internal/metrics"
	"github.com/campus-labs/student-registry/internal/query"
	"github.com/campus-labs/student-registry/internal/storage"
	"github.com/campus-labs/student-registry/internal/types"
	"github.com/campus-labs/student-registry/internal/utils/response"
)

// New handles POST /api/students
// Creates a record from the JSON request body.
//
// Request body (JSON):
//
//	{ "indexNumber": "CS1042", "name": "Rakesh", "email": "rakesh@test.com", "gpa": 3.4 }
//
// Success response (201 Created): the stored record, including its id
// and any defaulted fields (major, enrollmentDate).
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	409 Conflict    — index number already in use
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student record")

		var in types.NewRecord
		err := json.NewDecoder(r.Body).Decode(&in)

		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			// Malformed JSON, or a non-numeric gpa/age string.
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		rec, err := store.CreateRecord(in)
		metrics.ObserveOperation("create", err)
		if err != nil {
			response.Error(w, err)
			return
		}

		slog.Info("student record created", slog.Int64("id", rec.ID))
		response.WriteJSON(w, http.StatusCreated, rec)
	}
}

// GetList handles GET /api/students
// Returns a filtered, sorted, paginated view of the collection.
//
// Recognized query parameters: minGpa, maxGpa (inclusive bounds), name,
// major (case-insensitive substring), sort, order (asc|desc), limit,
// page. Malformed values fall back to defaults rather than erroring.
//
// Success response (200 OK):
//
//	{ "total": 5, "page": 1, "limit": 10, "data": [ ... ] }
//
// data is an empty array (not null) when nothing matches or the page is
// out of range; total always reflects the full filtered count.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing student records")

		params := query.ParseParams(r.URL.Query())

		records, err := store.ListRecords()
		metrics.ObserveOperation("list", err)
		if err != nil {
			slog.Error("error listing records", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, query.Run(records, params))
	}
}

// GetByID handles GET /api/students/{id}
// Fetches a single record by its id.
//
// Error responses:
//
//	400 Bad Request — id is not a valid integer
//	404 Not Found   — no record with that id
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.PathValue("id") extracts the {id} segment from the URL
		// (Go 1.22+ named path parameters in the ServeMux pattern).
		id := r.PathValue("id")
		slog.Info("getting a student record", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		rec, err := store.GetRecordByID(intID)
		metrics.ObserveOperation("get", err)
		if err != nil {
			slog.Error("error getting record",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, rec)
	}
}

// Update handles PATCH /api/students/{id}
// Applies a partial update: only the fields present in the body change.
//
// Request body (JSON) — any subset of the mutable fields:
//
//	{ "major": "Physics" }
//
// Unknown fields are ignored; the id cannot be changed. Numeric fields
// sent as strings ("gpa": "3.9") are accepted.
//
// Success response (200 OK) — the full updated record.
//
// Error responses:
//
//	400 Bad Request — invalid id, empty body, or validation failure
//	404 Not Found   — no record with that id
//	409 Conflict    — new index number belongs to a different record
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student record", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		var patch types.RecordPatch
		err = json.NewDecoder(r.Body).Decode(&patch)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		updated, err := store.UpdateRecord(intID, patch)
		metrics.ObserveOperation("update", err)
		if err != nil {
			slog.Error("error updating record",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("student record updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}
// Permanently removes a record and returns it.
//
// Success response (200 OK) — the deleted record.
//
// Error responses:
//
//	400 Bad Request — invalid id
//	404 Not Found   — no record with that id
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student record", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		deleted, err := store.DeleteRecord(intID)
		metrics.ObserveOperation("delete", err)
		if err != nil {
			slog.Error("error deleting record",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("student record deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, deleted)
	}
}
