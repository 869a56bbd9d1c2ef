// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the relational store.
//
// Repositories build their SQL from these definitions so that a column rename
// only touches one place.
package schema

import "strings"

// List joins column names for a SELECT or INSERT column list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}
