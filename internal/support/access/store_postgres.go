// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/dberr"
	"github.com/tellnab/tellnab/pkg/slice"
)

// PostgresRepository implements [RoleRepository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed role store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Resolution

/*
RoleAssignments loads the actor's roles with their permission keys.

Description: Uses a LEFT JOIN so permission-less roles still surface.
*/
func (repository *PostgresRepository) RoleAssignments(context context.Context, actorID string) ([]RoleAssignment, error) {
	const query = `
		SELECT r.key, COALESCE(array_agg(rp.permissionkey) FILTER (WHERE rp.permissionkey IS NOT NULL), '{}')
		FROM support.userrole ur
		JOIN support.role r ON r.id = ur.roleid
		LEFT JOIN support.rolepermission rp ON rp.roleid = r.id
		WHERE ur.userid = $1
		GROUP BY r.key
		ORDER BY r.key
	`
	rows, err := repository.db.Query(context, query, actorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_role_assignments")
	}
	defer rows.Close()

	var assignments []RoleAssignment
	for rows.Next() {
		var roleKey string
		var keys []string
		if err := rows.Scan(&roleKey, &keys); err != nil {
			return nil, dberr.Wrap(err, "scan_role_assignment")
		}
		assignments = append(assignments, RoleAssignment{RoleKey: roleKey, Permissions: toPermissions(keys)})
	}

	return assignments, dberr.Wrap(rows.Err(), "iterate_role_assignments")
}

// # Administration

// ListRoles returns every role with its permissions.
func (repository *PostgresRepository) ListRoles(context context.Context) ([]*Role, error) {
	const query = `
		SELECT r.id, r.key, r.name, r.description,
			COALESCE(array_agg(rp.permissionkey ORDER BY rp.permissionkey) FILTER (WHERE rp.permissionkey IS NOT NULL), '{}')
		FROM support.role r
		LEFT JOIN support.rolepermission rp ON rp.roleid = r.id
		GROUP BY r.id
		ORDER BY r.key
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		role := &Role{}
		var keys []string
		if err := rows.Scan(&role.ID, &role.Key, &role.Name, &role.Description, &keys); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		role.Permissions = toPermissions(keys)
		roles = append(roles, role)
	}

	return roles, dberr.Wrap(rows.Err(), "iterate_roles")
}

// AssignRole inserts the user-role link, ignoring duplicates.
func (repository *PostgresRepository) AssignRole(context context.Context, roleKey, userID string) error {
	const query = `
		INSERT INTO support.userrole (userid, roleid)
		SELECT $2, r.id FROM support.role r WHERE r.key = $1
		ON CONFLICT (userid, roleid) DO NOTHING
		RETURNING roleid
	`
	tag, err := repository.db.Exec(context, query, roleKey, userID)
	if err != nil {
		return dberr.Wrap(err, "assign_role")
	}

	// Zero rows means either an unknown role or an existing link.
	if tag.RowsAffected() == 0 {
		var exists bool
		err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM support.role WHERE key = $1)`, roleKey).Scan(&exists)
		if err != nil {
			return dberr.Wrap(err, "assign_role_lookup")
		}
		if !exists {
			return apperr.NotFound("Role")
		}
	}

	return nil
}

// RevokeRole deletes the user-role link.
func (repository *PostgresRepository) RevokeRole(context context.Context, roleKey, userID string) error {
	const query = `
		DELETE FROM support.userrole ur
		USING support.role r
		WHERE ur.roleid = r.id AND r.key = $1 AND ur.userid = $2
	`
	tag, err := repository.db.Exec(context, query, roleKey, userID)
	if err != nil {
		return dberr.Wrap(err, "revoke_role")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Role assignment")
	}
	return nil
}

func toPermissions(keys []string) []Permission {
	return slice.Map(keys, func(key string) Permission { return Permission(key) })
}
