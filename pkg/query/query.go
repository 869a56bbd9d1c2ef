// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list filters from URL query strings.
package query

import (
	"slices"
	"strings"
)

// StringSlice splits a comma-separated filter such as "OPEN,PENDING".
// Blank entries and duplicates are dropped; order is preserved.
func StringSlice(val string) []string {
	var result []string
	for _, part := range strings.Split(val, ",") {
		clean := strings.TrimSpace(part)
		if clean == "" || slices.Contains(result, clean) {
			continue
		}
		result = append(result, clean)
	}
	return result
}
