// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"unicode/utf8"

	"github.com/taibuivan/personapi/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Present fails if the field was not supplied at all.
func (v *Validator) Present(field string, present bool) *Validator {
	if !present {
		v.add(field, apperr.RuleRequired, "This field is required")
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, apperr.RuleMinLength, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, apperr.RuleMaxLength, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Length fails if the Unicode character count is outside [min, max] (inclusive).
// At most one error is recorded for the field.
func (v *Validator) Length(field, value string, min, max int) *Validator {
	count := utf8.RuneCountInString(value)
	switch {
	case count < min:
		v.add(field, apperr.RuleMinLength, fmt.Sprintf("Must be between %d and %d characters", min, max))
	case count > max:
		v.add(field, apperr.RuleMaxLength, fmt.Sprintf("Must be between %d and %d characters", min, max))
	}
	return v
}

// Positive fails if value is not strictly greater than zero.
func (v *Validator) Positive(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, apperr.RuleFormat, "Must be a positive integer")
	}
	return v
}

// Custom adds a failure with a custom rule and message if the condition is true.
//
// # Example
//
//	v.Custom("id", bodyID != pathID, apperr.RuleMismatch, "Must match the URL id")
func (v *Validator) Custom(field string, failed bool, rule, message string) *Validator {
	if failed {
		v.add(field, rule, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, rule, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Rule: rule, Message: message})
}
