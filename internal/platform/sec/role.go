// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// UserRole is the coarse label stored on an account and carried in the
// access token. Support permissions come from role assignments; the label
// only selects the fallback tier for accounts without any.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleSupport   UserRole = "support"
	RoleMember    UserRole = "member"
)

// roleAliases folds labels written by older account imports.
var roleAliases = map[string]UserRole{
	"superadmin": RoleAdmin,
	"agent":      RoleSupport,
	"staff":      RoleSupport,
}

// ParseUserRole normalizes a stored label. Unknown labels are returned
// lower-cased and report false from [UserRole.Valid].
func ParseUserRole(label string) UserRole {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if alias, ok := roleAliases[normalized]; ok {
		return alias
	}
	return UserRole(normalized)
}

// Valid reports whether r is one of the four canonical labels.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleSupport, RoleMember:
		return true
	}
	return false
}
