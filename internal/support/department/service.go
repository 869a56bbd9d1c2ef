// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package department

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/pkg/slug"
	"github.com/tellnab/tellnab/pkg/uuid"
)

// # Service Layer

// Service orchestrates department rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new department [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListDepartments returns every department.
func (service *Service) ListDepartments(context context.Context) ([]*Department, error) {
	return service.repo.List(context)
}

/*
CreateDepartment registers a new department.

Description: The slug is derived from the name. The caller must hold
support.departments.manage.

Returns:
  - *Department: Created entity
  - error: forbidden, validation or conflict errors
*/
func (service *Service) CreateDepartment(context context.Context, acl *access.ACL, name string) (*Department, error) {
	if err := access.Require(acl, access.PermDepartmentsManage); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	department := &Department{
		ID:   uuid.New(),
		Name: name,
		Slug: slug.From(name),
	}

	if department.Slug == "" {
		return nil, apperr.ValidationError("Department name must contain letters or digits",
			apperr.FieldError{Field: "name", Message: "Produces an empty slug"})
	}

	if err := service.repo.Create(context, department); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "department_created",
		slog.String("department_id", department.ID),
		slog.String("slug", department.Slug),
	)
	return department, nil
}
