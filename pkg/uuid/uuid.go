// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues the identifiers used for tickets, messages, departments,
accounts and relay connections.

Version 7 values sort by creation time, so ticket and message primary keys
stay append-mostly in their B-tree indexes.
*/
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string. It panics only if the system entropy source fails.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}
