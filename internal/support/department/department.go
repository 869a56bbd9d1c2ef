// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package department manages the support departments tickets can be routed to.
// Department-tier agents list tickets through a department filter.
package department

import (
	"context"
	"time"
)

// Department groups tickets for department-scoped agents.
type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the storage contract for departments.
type Repository interface {
	// List returns every department ordered by name.
	List(context context.Context) ([]*Department, error)

	// FindByID returns apperr.NotFound when the department does not exist.
	FindByID(context context.Context, id string) (*Department, error)

	// Create persists a department. Duplicate slugs yield apperr.Conflict.
	Create(context context.Context, department *Department) error
}
