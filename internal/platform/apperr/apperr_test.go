// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/facetrace/internal/platform/apperr"
)

/*
TestAppError_Status verifies the status mapping of every taxonomy member.
*/
func TestAppError_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"validation", apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{"conflict", apperr.Conflict("dup"), apperr.CodeConflict, http.StatusBadRequest},
		{"not_found", apperr.NotFound("missing"), apperr.CodeNotFound, http.StatusBadRequest},
		{"authentication", apperr.Unauthenticated("nope"), apperr.CodeAuthentication, http.StatusBadRequest},
		{"rate_limited", apperr.RateLimited(3), apperr.CodeRateLimited, http.StatusTooManyRequests},
		{"internal", apperr.Internal(errors.New("boom"), ""), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestInternal_HidesCause checks that the cause never becomes the client message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")

	err := apperr.Internal(cause, "")
	assert.Equal(t, apperr.DefaultInternalMessage, err.Error())
	assert.ErrorIs(t, err, cause)

	custom := apperr.Internal(cause, "Could not do it.")
	assert.Equal(t, "Could not do it.", custom.Message)
}

/*
TestAppError_Is matches freshly built errors by code and message.
*/
func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.Conflict("user already registered"))

	assert.ErrorIs(t, wrapped, apperr.Conflict("user already registered"))
	assert.NotErrorIs(t, wrapped, apperr.Conflict("something else"))
	assert.NotErrorIs(t, wrapped, apperr.NotFound("user already registered"))
}

/*
TestAs extracts the AppError through wrapping layers.
*/
func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", apperr.NotFound("user does not exist"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeNotFound, ae.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
}
