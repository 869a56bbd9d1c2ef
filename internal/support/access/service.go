// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"log/slog"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/sec"
)

// # Service Layer

// Service exposes ACL resolution and role administration to handlers.
type Service struct {
	repo     RoleRepository
	resolver *Resolver
	logger   *slog.Logger
}

// NewService constructs a new access [Service].
func NewService(repo RoleRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: NewResolver(repo),
		logger:   logger.With(slog.String("component", "access")),
	}
}

// Resolver returns the underlying resolver for other support services.
func (service *Service) Resolver() *Resolver {
	return service.resolver
}

// ACLFor resolves the ACL of an authenticated caller.
func (service *Service) ACLFor(context context.Context, claims *sec.AuthClaims) (*ACL, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.resolver.ResolveACL(context, claims.UserID, claims.Role)
}

// # Role Administration

// ListRoles returns every role definition.
func (service *Service) ListRoles(context context.Context) ([]*Role, error) {
	return service.repo.ListRoles(context)
}

/*
AssignRole grants a role to a user.

Returns:
  - error: [ForbiddenError] without support.roles.manage, NotFound for unknown roles
*/
func (service *Service) AssignRole(context context.Context, acl *ACL, roleKey, userID string) error {
	if err := Require(acl, PermRolesManage); err != nil {
		return err
	}

	if err := service.repo.AssignRole(context, roleKey, userID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "role_assigned",
		slog.String("role", roleKey),
		slog.String("user_id", userID),
	)
	return nil
}

// RevokeRole removes a role from a user. It needs support.roles.manage.
func (service *Service) RevokeRole(context context.Context, acl *ACL, roleKey, userID string) error {
	if err := Require(acl, PermRolesManage); err != nil {
		return err
	}

	if err := service.repo.RevokeRole(context, roleKey, userID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "role_revoked",
		slog.String("role", roleKey),
		slog.String("user_id", userID),
	)
	return nil
}
