// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the storage layer reacts to.
const (
	codeUniqueViolation = "23505"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = errors.New("dberr: not found")

	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("dberr: duplicate key")
)

// Wrap classifies a database error while keeping the original for logging.
//
// Services match the result with [errors.Is] against [ErrNotFound] and
// [ErrDuplicate] and translate those into domain errors. Everything else
// stays an opaque wrapped error that the boundary reports as Internal.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}

	// 2. Unique constraint mapping
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", action, ErrDuplicate, err)
	}

	// 3. Unknown query errors
	return fmt.Errorf("%s: %w", action, err)
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == codeUniqueViolation
}
