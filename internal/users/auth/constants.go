// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

const (
	// AccessTokenTTL bounds how long a leaked access token is useful. Relay
	// sockets check it only at the handshake.
	AccessTokenTTL = 15 * time.Minute

	RefreshTokenTTL    = 30 * 24 * time.Hour
	RefreshTokenLength = 32

	MinPasswordLength = 8
)
