// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"net/http"

	"github.com/tellnab/tellnab/internal/platform/apperr"
)

// Machine-readable decision codes.
const (
	CodeDepartmentScopeRequired = "department_scope_required"
	CodeForbidden               = "forbidden"
)

// ScopeError signals a department-tier listing without a department filter.
// The caller can recover by adding the filter.
func ScopeError() *apperr.AppError {
	return apperr.WithCode(http.StatusBadRequest, CodeDepartmentScopeRequired,
		"A department filter is required for your access level")
}

// ForbiddenError signals a permission or assignee rule denial.
func ForbiddenError(msg string) *apperr.AppError {
	return apperr.WithCode(http.StatusForbidden, CodeForbidden, msg)
}

// IsScopeError reports whether err is a [ScopeError].
func IsScopeError(err error) bool {
	return apperr.HasCode(err, CodeDepartmentScopeRequired)
}

// IsForbidden reports whether err is a [ForbiddenError].
func IsForbidden(err error) bool {
	return apperr.HasCode(err, CodeForbidden)
}
