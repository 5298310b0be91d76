// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Handlers use it for shape checks (presence, size limits) before any service
// call. Business rules such as the password policy stay in the service.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/facetrace/internal/platform/apperr"
)

// FailedMessage is the top-level message of an aggregated validation error.
const FailedMessage = "Validation failed"

// ErrInvalidPayload is returned when the request body cannot be decoded.
var ErrInvalidPayload = apperr.ValidationError("Invalid request payload")

// Validator collects field-level validation errors via a fluent, chainable API.
//
// The zero value is ready to use. A Validator belongs to one request and is
// not safe for concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

// Check records message against field when ok is false. Every rule below is
// built on it; handlers can use it directly for one-off conditions.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// Required fails if the value is empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLen fails if value has more than max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Check(utf8.RuneCountInString(value) <= max, field, fmt.Sprintf("must be at most %d characters", max))
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns a VALIDATION_ERROR carrying every recorded failure, or nil.
// Call it once, at the end of the chain.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(FailedMessage, v.errs...)
}
