// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, query, and utils can all import types without
// depending on each other.
package types

import (
	"bytes"
	"fmt"
	"strconv"
)

// DateLayout is the wire format for enrollmentDate values (YYYY-MM-DD).
// It doubles as the validator's datetime= reference layout.
const DateLayout = "2006-01-02"

// DefaultMajor is assigned when a record is created without a major.
const DefaultMajor = "Undeclared"

// Record is a student entry as stored by the registry.
//
// IDs are assigned by the store and never change. Age is a pointer
// because the field is optional; a nil Age is omitted from the JSON
// output entirely rather than rendered as 0.
type Record struct {
	ID             int64   `json:"id"`
	IndexNumber    string  `json:"indexNumber"`
	Name           string  `json:"name"`
	Major          string  `json:"major"`
	Age            *int    `json:"age,omitempty"`
	GPA            float64 `json:"gpa"`
	Email          string  `json:"email"`
	EnrollmentDate string  `json:"enrollmentDate"`
}

// Clone returns a copy of the record that shares no pointers with the
// original, so callers can hand out records without exposing store state.
func (r Record) Clone() Record {
	out := r
	if r.Age != nil {
		age := *r.Age
		out.Age = &age
	}
	return out
}

// NewRecord is the payload accepted when creating a record.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field is decoded from the request
//     body (lowercase names match REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package via internal/validation.
//
// GPA is a *Float rather than a float64 so that "gpa missing" and
// "gpa": 0.0 are distinguishable: required fails only on a nil pointer,
// and 0.0 is a legal grade point average.
type NewRecord struct {
	IndexNumber    string `json:"indexNumber" validate:"required,alphanum"`
	Name           string `json:"name" validate:"required"`
	Major          string `json:"major"`
	Age            *Int   `json:"age" validate:"omitnil,gte=16"`
	GPA            *Float `json:"gpa" validate:"required,gte=0,lte=4"`
	Email          string `json:"email" validate:"required"`
	EnrollmentDate string `json:"enrollmentDate" validate:"omitempty,datetime=2006-01-02"`
}

// RecordPatch is the payload accepted when partially updating a record.
//
// Every field is a pointer: nil means "leave untouched", non-nil means
// "validate and apply". This struct is the explicit allow-list of
// mutable fields — JSON keys that do not match a field here are dropped
// by encoding/json and never reach the store. ID is deliberately absent;
// identifiers are immutable.
//
// omitnil (not omitempty) keeps validation active for present-but-empty
// values, so a patch cannot blank out a required field like name.
type RecordPatch struct {
	IndexNumber    *string `json:"indexNumber" validate:"omitnil,alphanum"`
	Name           *string `json:"name" validate:"omitnil,min=1"`
	Major          *string `json:"major"`
	Age            *Int    `json:"age" validate:"omitnil,gte=16"`
	GPA            *Float  `json:"gpa" validate:"omitnil,gte=0,lte=4"`
	Email          *string `json:"email" validate:"omitnil,min=1"`
	EnrollmentDate *string `json:"enrollmentDate" validate:"omitnil,datetime=2006-01-02"`
}

// Float is a float64 that unmarshals from either a JSON number or a
// numeric string, so "gpa": "3.5" and "gpa": 3.5 are the same value by
// the time validation runs. Coercion lives here, once, as part of the
// field's type contract instead of ad hoc at call sites.
//
// Because Float's underlying kind is float64, numeric validator tags
// (gte, lte) apply to it directly.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = Float(v)
	return nil
}

// Int is the integer counterpart of Float: accepts 19 and "19".
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*i = Int(v)
	return nil
}
