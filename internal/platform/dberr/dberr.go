// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into client-facing apperr values.
// Anything unclassified becomes an internal error carrying the action name.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tellnab/tellnab/internal/platform/apperr"
)

// ErrNotFound is returned by [Wrap] for an empty single-row result.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap maps err for the client. action names the failing repository call in
// server logs, e.g. "ticket_repo_update_failed".
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Unprocessable("Referenced resource does not exist")
		case pgerrcode.InvalidTextRepresentation:
			return apperr.ValidationError("Malformed identifier")
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value rejected by a storage constraint")
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// NotFound is [Wrap] with the missing resource named, e.g. "Ticket not found".
func NotFound(err error, resource, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}
