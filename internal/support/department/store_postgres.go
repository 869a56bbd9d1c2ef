// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package department

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tellnab/tellnab/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed department store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all departments ordered by name.
func (repository *PostgresRepository) List(context context.Context) ([]*Department, error) {
	const query = `
		SELECT id, name, slug, createdat
		FROM support.department
		ORDER BY name ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_departments")
	}
	defer rows.Close()

	departments := []*Department{}
	for rows.Next() {
		department := &Department{}
		if err := rows.Scan(&department.ID, &department.Name, &department.Slug, &department.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_department")
		}
		departments = append(departments, department)
	}

	return departments, dberr.Wrap(rows.Err(), "iterate_departments")
}

// FindByID retrieves a single department.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Department, error) {
	const query = `
		SELECT id, name, slug, createdat
		FROM support.department
		WHERE id = $1
	`
	department := &Department{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&department.ID, &department.Name, &department.Slug, &department.CreatedAt,
	)
	if err != nil {
		return nil, dberr.NotFound(err, "Department", "get_department_by_id")
	}
	return department, nil
}

// Create inserts a new department.
func (repository *PostgresRepository) Create(context context.Context, department *Department) error {
	const query = `
		INSERT INTO support.department (id, name, slug, createdat)
		VALUES ($1, $2, $3, NOW())
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query, department.ID, department.Name, department.Slug).
		Scan(&department.CreatedAt)

	return dberr.Wrap(err, "create_department")
}
