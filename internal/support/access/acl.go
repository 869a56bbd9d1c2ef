// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"slices"
)

// ACL is the resolved set of roles and permissions for one actor.
//
// Values are immutable once built; every predicate is pure.
type ACL struct {
	roles        map[string]struct{}
	permissions  map[Permission]struct{}
	usedFallback bool
}

// NewACL builds an ACL from explicit role keys and permissions.
func NewACL(roles []string, permissions []Permission) *ACL {
	acl := &ACL{
		roles:       make(map[string]struct{}, len(roles)),
		permissions: make(map[Permission]struct{}, len(permissions)),
	}
	for _, role := range roles {
		acl.roles[role] = struct{}{}
	}
	for _, permission := range permissions {
		acl.permissions[permission] = struct{}{}
	}
	return acl
}

// FallbackACL returns exactly the tier's permission set under its synthetic role.
func FallbackACL(tier FallbackTier) *ACL {
	acl := NewACL([]string{tier.RoleKey()}, tier.Permissions())
	acl.usedFallback = true
	return acl
}

// HasRole reports whether the role key is held.
func (acl *ACL) HasRole(key string) bool {
	_, ok := acl.roles[key]
	return ok
}

// HasPermission reports whether the permission is held.
func (acl *ACL) HasPermission(permission Permission) bool {
	_, ok := acl.permissions[permission]
	return ok
}

// HasAny reports whether at least one of the permissions is held.
func (acl *ACL) HasAny(permissions ...Permission) bool {
	for _, permission := range permissions {
		if acl.HasPermission(permission) {
			return true
		}
	}
	return false
}

// Roles returns the role keys in sorted order.
func (acl *ACL) Roles() []string {
	roles := make([]string, 0, len(acl.roles))
	for role := range acl.roles {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}

// Permissions returns the permission keys in sorted order.
func (acl *ACL) Permissions() []Permission {
	permissions := make([]Permission, 0, len(acl.permissions))
	for permission := range acl.permissions {
		permissions = append(permissions, permission)
	}
	slices.Sort(permissions)
	return permissions
}

// UsedFallback reports whether the permissions came from a fallback tier.
func (acl *ACL) UsedFallback() bool {
	return acl.usedFallback
}

// ACLView is the JSON projection of an ACL.
type ACLView struct {
	Roles        []string     `json:"roles"`
	Permissions  []Permission `json:"permissions"`
	UsedFallback bool         `json:"used_fallback"`
}

// View projects the ACL for transport.
func (acl *ACL) View() ACLView {
	return ACLView{Roles: acl.Roles(), Permissions: acl.Permissions(), UsedFallback: acl.usedFallback}
}
