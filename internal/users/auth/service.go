// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/sec"
	"github.com/tellnab/tellnab/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and verifying access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, displayName, role string, timeToLive time.Duration) (string, error)

	// VerifyToken parses a signed JWT and returns its claims.
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Options tunes identity resolution.
type Options struct {
	// AllowRawIdentifier lets a bare account id stand in for a token.
	// Development only: it trusts the client's claim of identity.
	AllowRawIdentifier bool
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	options           Options
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	options Options,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		options:           options,
		logger:            logger.With(slog.String("component", "auth")),
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: New accounts always start with the member role. Staff roles are
granted out of band.

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email and username uniqueness. Return a client-safe Conflict err.
	if _, err := service.userRepository.FindByLogin(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.userRepository.FindByLogin(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, apperr.ValidationError("Password is too long", apperr.FieldError{Field: FieldPassword, Message: "Maximum 72 bytes"})
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Can be Username or Email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByLogin(context, input.Login)

	// Generic message to prevent enumeration.
	if err != nil {
		sec.BurnPasswordCheck(input.Password)
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issueSession(context, user, input.UserAgent, input.IPAddress)
}

/*
Logout permanently revokes the session behind a refresh token.

Description: Idempotent. Unknown or expired tokens are treated as already logged out.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if err := service.sessionRepository.Delete(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, deletes it to prevent reuse,
and issues a fresh pair of rotated tokens.

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: the old token dies before the new one is minted.
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.issueSession(context, user, userAgent, ipAddress)
}

func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.DisplayName, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Identity

// Me returns the account of the authenticated caller.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
ResolveIdentity maps a client credential onto an account identity.

Description: A non-empty token is verified as a signed access token. Without
a token, a raw account id is accepted only when [Options.AllowRawIdentifier]
is set. The display name is refreshed from the account when it can be loaded.

Returns:
  - Identity: Resolved actor
  - error: apperr.Unauthorized for any rejected credential
*/
func (service *Service) ResolveIdentity(context context.Context, token, actorID string) (Identity, error) {
	token = strings.TrimSpace(token)
	actorID = strings.TrimSpace(actorID)

	if token != "" {
		claims, err := service.tokenProvider.VerifyToken(token)
		if err != nil {
			return Identity{}, apperr.Unauthorized("Invalid or expired token")
		}

		identity := Identity{UserID: claims.UserID, DisplayName: claims.Name(), Role: sec.ParseUserRole(claims.Role)}

		// Claims may predate a display name change.
		user, err := service.userRepository.FindByID(context, claims.UserID)
		switch {
		case err == nil:
			identity.DisplayName = user.Name()
		case !errors.Is(err, apperr.NotFound("User")):
			service.logger.WarnContext(context, "identity_lookup_failed",
				slog.String("user_id", claims.UserID), slog.Any("error", err))
		}
		return identity, nil
	}

	if actorID == "" || !service.options.AllowRawIdentifier {
		return Identity{}, apperr.Unauthorized("Missing credentials")
	}

	user, err := service.userRepository.FindByID(context, actorID)
	if err != nil {
		return Identity{}, apperr.Unauthorized("Unknown account")
	}

	return Identity{UserID: user.ID, DisplayName: user.Name(), Role: user.Role}, nil
}
