// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import "github.com/tellnab/tellnab/internal/platform/sec"

// FallbackTier is the closed set of permission bundles applied to actors
// without any explicit role mapping.
type FallbackTier int

const (
	TierDefaultMember FallbackTier = iota
	TierSupportStaff
	TierElevatedModeration
	TierFullAccess
)

// Fixed permission bundles per tier.
var (
	fullAccessPermissions = AllPermissions

	elevatedModerationPermissions = []Permission{
		PermTicketReadAll,
		PermTicketCreate,
		PermTicketAssign,
		PermTicketPriorityUpdate,
		PermTicketStatusUpdate,
		PermTicketMessageCreate,
	}

	supportStaffPermissions = []Permission{
		PermTicketReadAssigned,
		PermTicketCreate,
		PermTicketPriorityUpdate,
		PermTicketStatusUpdateAssign,
		PermTicketMessageCreate,
	}

	defaultMemberPermissions = []Permission{
		PermTicketReadOwn,
		PermTicketCreate,
		PermTicketMessageCreate,
	}
)

/*
ParseLegacyRole maps a coarse account role label onto its fallback tier.

Description: Matching is case-insensitive and ignores surrounding whitespace.
Labels outside the known staff vocabulary resolve to [TierDefaultMember].
*/
func ParseLegacyRole(label string) FallbackTier {
	switch sec.ParseUserRole(label) {
	case sec.RoleAdmin:
		return TierFullAccess
	case sec.RoleModerator:
		return TierElevatedModeration
	case sec.RoleSupport:
		return TierSupportStaff
	default:
		return TierDefaultMember
	}
}

// Permissions returns a copy of the tier's fixed permission set.
func (tier FallbackTier) Permissions() []Permission {
	var source []Permission
	switch tier {
	case TierFullAccess:
		source = fullAccessPermissions
	case TierElevatedModeration:
		source = elevatedModerationPermissions
	case TierSupportStaff:
		source = supportStaffPermissions
	default:
		source = defaultMemberPermissions
	}
	return append([]Permission(nil), source...)
}

// RoleKey is the synthetic role reported for actors resolved through the tier.
func (tier FallbackTier) RoleKey() string {
	switch tier {
	case TierFullAccess:
		return "support_admin"
	case TierElevatedModeration:
		return "support_moderator"
	case TierSupportStaff:
		return "support_agent"
	default:
		return "member"
	}
}

// IsStaff reports whether actors of this tier appear in agent presence.
func (tier FallbackTier) IsStaff() bool {
	return tier != TierDefaultMember
}

func (tier FallbackTier) String() string {
	return tier.RoleKey()
}
