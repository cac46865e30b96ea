// Package validation owns the field rules for record payloads.
//
// All rules are declared as validate:"..." tags on the payload structs in
// internal/types and checked by go-playground/validator. This package
// holds the single shared validator instance; a validator caches struct
// metadata, so one instance is built at init rather than one per request.
//
// The rules themselves, for reference:
//
//	indexNumber    required, alphanumeric (letters and digits only)
//	name           required, non-empty
//	email          required, non-empty
//	gpa            required, 0.0 <= gpa <= 4.0 (0.0 and 4.0 are legal)
//	age            optional, >= 16 when present
//	enrollmentDate optional, YYYY-MM-DD when present
//
// Validation is pure: no logging, no mutation. Callers receive a
// validator.ValidationErrors they can inspect per field; a failed
// "required" tag means the field was missing, any other failed tag means
// the value was present but invalid.
package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Struct checks every validate:"..." tag on v. It returns nil when all
// rules pass, or a validator.ValidationErrors describing each failure.
func Struct(v any) error {
	return validate.Struct(v)
}
