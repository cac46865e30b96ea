// Package storage defines the Storage interface — a contract that any
// record-store backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care how records are kept.
// By depending only on this interface:
//
//   - Swapping the backend = implement the interface for the new store,
//     change one line in main.go. Zero handler changes.
//
//   - Writing tests = pass a fake that satisfies the interface.
//
// The package also defines the error taxonomy shared between the store
// and its callers. The store reports failures by wrapping one of these
// sentinels; adapters classify with errors.Is and map each kind to a
// transport-level signal (404, 409, ...). Validation failures are not
// listed here — those surface as validator.ValidationErrors from the
// payload rules in internal/validation.
package storage

import (
	"errors"

	"github.com/campus-labs/student-registry/internal/types"
)

// ErrNotFound reports that no record exists for the given id.
var ErrNotFound = errors.New("record not found")

// ErrIndexNumberTaken reports a uniqueness violation: the index number
// is already held by a different record.
var ErrIndexNumberTaken = errors.New("index number already in use")

// Storage is the record-store contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly.
type Storage interface {
	// CreateRecord validates in, assigns the next id, applies field
	// defaults, and appends the record. Returns the stored record.
	CreateRecord(in types.NewRecord) (types.Record, error)

	// GetRecordByID fetches a single record by id.
	// Returns ErrNotFound when no record matches.
	GetRecordByID(id int64) (types.Record, error)

	// ListRecords returns a snapshot of every record in insertion order.
	// Returns an empty slice (not nil) when the store is empty.
	ListRecords() ([]types.Record, error)

	// UpdateRecord applies the non-nil fields of patch to the record.
	// Fields absent from the patch are left untouched.
	UpdateRecord(id int64, patch types.RecordPatch) (types.Record, error)

	// DeleteRecord removes the record permanently and returns it.
	DeleteRecord(id int64) (types.Record, error)
}
