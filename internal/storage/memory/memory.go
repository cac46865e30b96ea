// Package memory provides the in-memory implementation of the
// storage.Storage interface.
//
// The registry is memory-resident by design: the collection lives for
// the lifetime of the process and is discarded on exit. State is owned
// by a Store value constructed in main and passed to handlers, never
// package-level globals, so tests can build as many independent stores
// as they like.
//
// Records are kept in a slice in insertion order — insertion order is
// the canonical default ordering for listings — with a side map from
// index number to id for O(1) uniqueness checks. A sync.RWMutex
// serializes mutations; every record that leaves the store is a clone,
// so callers can never alias internal state.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/campus-labs/student-registry/internal/storage"
	"github.com/campus-labs/student-registry/internal/types"
	"github.com/campus-labs/student-registry/internal/validation"
)

// Compile-time contract assertion.
var _ storage.Storage = (*Store)(nil)

// Store owns the record collection and the id counter.
type Store struct {
	mu      sync.RWMutex
	records []types.Record
	byIndex map[string]int64 // index number -> record id
	nextID  int64
}

// New returns an empty store whose first assigned id is 1.
func New() *Store {
	return &Store{
		byIndex: make(map[string]int64),
		nextID:  1,
	}
}

// CreateRecord validates in, enforces index-number uniqueness, assigns
// the next id, applies defaults (major, enrollmentDate), and appends the
// record. The id counter advances only on success, so a rejected create
// never burns an identifier.
func (s *Store) CreateRecord(in types.NewRecord) (types.Record, error) {
	if err := validation.Struct(in); err != nil {
		return types.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byIndex[in.IndexNumber]; taken {
		return types.Record{}, fmt.Errorf("index number %q: %w",
			in.IndexNumber, storage.ErrIndexNumberTaken)
	}

	rec := types.Record{
		ID:             s.nextID,
		IndexNumber:    in.IndexNumber,
		Name:           in.Name,
		Major:          in.Major,
		GPA:            float64(*in.GPA),
		Email:          in.Email,
		EnrollmentDate: in.EnrollmentDate,
	}
	if in.Age != nil {
		age := int(*in.Age)
		rec.Age = &age
	}
	if rec.Major == "" {
		rec.Major = types.DefaultMajor
	}
	if rec.EnrollmentDate == "" {
		rec.EnrollmentDate = time.Now().Format(types.DateLayout)
	}

	s.records = append(s.records, rec)
	s.byIndex[rec.IndexNumber] = rec.ID
	s.nextID++

	return rec.Clone(), nil
}

// GetRecordByID fetches a single record by id.
func (s *Store) GetRecordByID(id int64) (types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.locate(id)
	if i < 0 {
		return types.Record{}, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	return s.records[i].Clone(), nil
}

// ListRecords returns a snapshot copy of the collection in insertion
// order. The slice and every record in it are independent of store
// state — callers (notably the query engine) may reorder them freely.
func (s *Store) ListRecords() ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// UpdateRecord applies the non-nil fields of patch to the record with
// the given id. Validation runs before any mutation, so a rejected patch
// leaves the record exactly as it was. An index-number change that
// collides with a different record is a conflict; re-stating the
// record's own index number is fine.
func (s *Store) UpdateRecord(id int64, patch types.RecordPatch) (types.Record, error) {
	if err := validation.Struct(patch); err != nil {
		return types.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 {
		return types.Record{}, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	rec := &s.records[i]

	if patch.IndexNumber != nil {
		if ownerID, taken := s.byIndex[*patch.IndexNumber]; taken && ownerID != id {
			return types.Record{}, fmt.Errorf("index number %q: %w",
				*patch.IndexNumber, storage.ErrIndexNumberTaken)
		}
		delete(s.byIndex, rec.IndexNumber)
		rec.IndexNumber = *patch.IndexNumber
		s.byIndex[rec.IndexNumber] = id
	}
	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Major != nil {
		rec.Major = *patch.Major
	}
	if patch.Age != nil {
		age := int(*patch.Age)
		rec.Age = &age
	}
	if patch.GPA != nil {
		rec.GPA = float64(*patch.GPA)
	}
	if patch.Email != nil {
		rec.Email = *patch.Email
	}
	if patch.EnrollmentDate != nil {
		rec.EnrollmentDate = *patch.EnrollmentDate
	}

	return rec.Clone(), nil
}

// DeleteRecord removes the record permanently and returns it. There is
// no tombstone state; a deleted id is simply absent (though never
// reused — the counter only moves forward).
func (s *Store) DeleteRecord(id int64) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.locate(id)
	if i < 0 {
		return types.Record{}, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}

	rec := s.records[i]
	delete(s.byIndex, rec.IndexNumber)
	s.records = append(s.records[:i], s.records[i+1:]...)

	return rec, nil
}

// Seed loads records through the normal create path, so seed data is
// held to the same validation and uniqueness rules as API input.
func (s *Store) Seed(roster []types.NewRecord) error {
	for _, in := range roster {
		if _, err := s.CreateRecord(in); err != nil {
			return fmt.Errorf("seed record %q: %w", in.IndexNumber, err)
		}
	}
	return nil
}

// locate returns the slice position of the record with the given id,
// or -1. Callers must hold the lock. Linear scan: the collection is
// small and kept in insertion order, which listings depend on.
func (s *Store) locate(id int64) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
