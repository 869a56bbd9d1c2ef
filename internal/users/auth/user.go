// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the account entity, credential verification, and the refresh
session lifecycle. Other subsystems (support tickets, the realtime relay)
consume it as an opaque identity collaborator: they hand over a token or an
account id and receive an [Identity] back.

# Architecture

  - Service: Orchestrates Register, Login, Refresh, Logout and identity resolution.
  - Repository: Postgres for accounts, Redis for refresh sessions.
  - Security: bcrypt password hashes and RS256 access tokens from [sec].
*/
package auth

import (
	"time"

	"github.com/tellnab/tellnab/internal/platform/sec"
)

// # Domain Entities

// User represents a registered TellNab account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Name returns the display name, falling back to the username.
func (user *User) Name() string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return user.Username
}

// Session represents an active refresh-token session.
type Session struct {
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the resolved actor behind a credential.
type Identity struct {
	UserID      string
	DisplayName string
	Role        sec.UserRole
}

// Input field names reported in validation errors.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)
