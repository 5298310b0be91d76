// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Success bodies are written as-is; every error body follows the same
// `{"message": ...}` shape so the SPA can always display `message`.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/facetrace/internal/platform/apperr"
	"github.com/taibuivan/facetrace/internal/platform/ctxutil"
)

// MessageEnvelope is the JSON body for responses that only carry a message.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the payload as the body.
func OK(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusOK, payload)
}

// Created writes a 201 Created response with the payload as the body.
func Created(writer http.ResponseWriter, payload interface{}) {
	JSON(writer, http.StatusCreated, payload)
}

// Message writes a `{"message": msg}` body with the given status.
func Message(writer http.ResponseWriter, statusCode int, msg string) {
	JSON(writer, statusCode, MessageEnvelope{Message: msg})
}

// Error converts any Go error into a standardized JSON API error response.
//
// Errors that are not [*apperr.AppError] are reported as Internal with
// [apperr.DefaultInternalMessage]. Use [ErrorWithFallback] to pick the text.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ErrorWithFallback(writer, request, err, apperr.DefaultInternalMessage)
}

// ErrorWithFallback is [Error] with a caller-chosen message for unexpected failures.
func ErrorWithFallback(writer http.ResponseWriter, request *http.Request, err error, fallback string) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		appError = apperr.Internal(err, fallback)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Message: appError.Message,
		Details: appError.Details,
	})
}
