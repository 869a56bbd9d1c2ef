// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/support/access"
)

// fakeRoles is an in-memory RoleRepository keyed by actor id.
type fakeRoles struct {
	assignments map[string][]access.RoleAssignment
	roles       map[string]*access.Role
	links       map[string]map[string]bool // roleKey -> userID
	err         error
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{
		assignments: map[string][]access.RoleAssignment{},
		roles:       map[string]*access.Role{},
		links:       map[string]map[string]bool{},
	}
}

func (f *fakeRoles) RoleAssignments(_ context.Context, actorID string) ([]access.RoleAssignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assignments[actorID], nil
}

func (f *fakeRoles) ListRoles(context.Context) ([]*access.Role, error) {
	roles := make([]*access.Role, 0, len(f.roles))
	for _, role := range f.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

func (f *fakeRoles) AssignRole(_ context.Context, roleKey, userID string) error {
	if _, ok := f.roles[roleKey]; !ok {
		return apperr.NotFound("Role")
	}
	if f.links[roleKey] == nil {
		f.links[roleKey] = map[string]bool{}
	}
	f.links[roleKey][userID] = true
	return nil
}

func (f *fakeRoles) RevokeRole(_ context.Context, roleKey, userID string) error {
	if !f.links[roleKey][userID] {
		return apperr.NotFound("Role assignment")
	}
	delete(f.links[roleKey], userID)
	return nil
}

/*
TestParseLegacyRole pins the label to tier mapping.
*/
func TestParseLegacyRole(t *testing.T) {
	tests := []struct {
		label string
		tier  access.FallbackTier
		staff bool
	}{
		{"admin", access.TierFullAccess, true},
		{" SuperAdmin ", access.TierFullAccess, true},
		{"moderator", access.TierElevatedModeration, true},
		{"support", access.TierSupportStaff, true},
		{"agent", access.TierSupportStaff, true},
		{"member", access.TierDefaultMember, false},
		{"", access.TierDefaultMember, false},
		{"wizard", access.TierDefaultMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			tier := access.ParseLegacyRole(tt.label)
			assert.Equal(t, tt.tier, tier)
			assert.Equal(t, tt.staff, tier.IsStaff())
		})
	}
}

/*
TestFallbackTier_Permissions checks the fixed bundles and that callers cannot mutate them.
*/
func TestFallbackTier_Permissions(t *testing.T) {
	assert.ElementsMatch(t, access.AllPermissions, access.TierFullAccess.Permissions())
	assert.ElementsMatch(t, []access.Permission{
		access.PermTicketReadOwn, access.PermTicketCreate, access.PermTicketMessageCreate,
	}, access.TierDefaultMember.Permissions())

	support := access.TierSupportStaff.Permissions()
	assert.Contains(t, support, access.PermTicketStatusUpdateAssign)
	assert.NotContains(t, support, access.PermTicketAssign)

	support[0] = "tampered"
	assert.NotContains(t, access.TierSupportStaff.Permissions(), access.Permission("tampered"))
}

/*
TestResolveACL_FallbackExclusivity verifies that explicit mappings and the fallback never mix.
*/
func TestResolveACL_FallbackExclusivity(t *testing.T) {
	repo := newFakeRoles()
	repo.assignments["dept-agent"] = []access.RoleAssignment{
		{RoleKey: "department_agent", Permissions: []access.Permission{access.PermTicketReadDepartment}},
	}
	repo.assignments["empty-role"] = []access.RoleAssignment{{RoleKey: "placeholder"}}
	resolver := access.NewResolver(repo)
	ctx := context.Background()

	t.Run("no_assignments_uses_full_fallback", func(t *testing.T) {
		acl, err := resolver.ResolveACL(ctx, "nobody", "moderator")
		require.NoError(t, err)
		assert.True(t, acl.UsedFallback())
		assert.ElementsMatch(t, access.TierElevatedModeration.Permissions(), acl.Permissions())
		assert.True(t, acl.HasRole("support_moderator"))
	})

	t.Run("explicit_mapping_excludes_fallback", func(t *testing.T) {
		// An admin label would grant everything through the fallback.
		acl, err := resolver.ResolveACL(ctx, "dept-agent", "admin")
		require.NoError(t, err)
		assert.False(t, acl.UsedFallback())
		assert.Equal(t, []access.Permission{access.PermTicketReadDepartment}, acl.Permissions())
		assert.True(t, acl.HasRole("department_agent"))
		assert.False(t, acl.HasPermission(access.PermTicketCreate))
	})

	t.Run("permissionless_role_still_falls_back", func(t *testing.T) {
		acl, err := resolver.ResolveACL(ctx, "empty-role", "member")
		require.NoError(t, err)
		assert.True(t, acl.UsedFallback())
		assert.ElementsMatch(t, access.TierDefaultMember.Permissions(), acl.Permissions())
		assert.Equal(t, []string{"placeholder"}, acl.Roles())
	})

	t.Run("storage_failure", func(t *testing.T) {
		failing := newFakeRoles()
		failing.err = errors.New("connection reset")
		_, err := access.NewResolver(failing).ResolveACL(ctx, "x", "admin")
		require.Error(t, err)
	})
}

/*
TestService_RoleAdministration checks the support.roles.manage gate.
*/
func TestService_RoleAdministration(t *testing.T) {
	repo := newFakeRoles()
	repo.roles["support_agent"] = &access.Role{Key: "support_agent"}
	service := access.NewService(repo, discardLogger())
	ctx := context.Background()

	member := access.FallbackACL(access.TierDefaultMember)
	admin := access.FallbackACL(access.TierFullAccess)

	err := service.AssignRole(ctx, member, "support_agent", "u1")
	assert.True(t, access.IsForbidden(err))

	require.NoError(t, service.AssignRole(ctx, admin, "support_agent", "u1"))
	assert.True(t, repo.links["support_agent"]["u1"])

	err = service.AssignRole(ctx, admin, "ghost_role", "u1")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	require.NoError(t, service.RevokeRole(ctx, admin, "support_agent", "u1"))
	err = service.RevokeRole(ctx, admin, "support_agent", "u1")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
