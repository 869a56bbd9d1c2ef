// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin returns the account whose email or username equals login.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Returns:
		  - error: apperr.Conflict on duplicate email/username
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// SessionRepository stores refresh sessions keyed by the hash of their token.
type SessionRepository interface {

	// Create stores the session until its ExpiresAt.
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns apperr.Unauthorized-compatible NotFound when absent or expired.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Delete revokes the session. Deleting a missing session is not an error.
	Delete(context context.Context, tokenHash string) error
}
