// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed tuning values and wire names shared
// across packages. Deployment-specific values live in config instead.
package constants

import "time"

// AppName tags logs, the Postgres application_name and the Redis client name.
const AppName = "tellnab-api"

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout caps REST handlers and, through statement_timeout,
	// every SQL statement.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout applies separately to HTTP draining and to the relay hub.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Per-IP token bucket for the REST API.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "tellnab.com"

	// AllowedOriginDomain is the product domain; it and its subdomains pass the origin policy over https.
	AllowedOriginDomain = "tellnab.com"

	// The refresh cookie is only sent to the auth routes.
	RefreshTokenCookieName = "refresh_token"
	RefreshTokenCookiePath = "/api/v1/auth"
)

// RedisPrefixSession namespaces refresh sessions, keyed by token hash.
const RedisPrefixSession = "auth:session:"

// # Realtime

const (
	// RealtimePath is the websocket endpoint mounted at the router root.
	RealtimePath = "/ws"

	// RealtimeMailboxSize bounds the hub's pending event queue.
	RealtimeMailboxSize = 1024

	// RealtimeSocketBufferSize sizes the websocket read and write buffers.
	RealtimeSocketBufferSize = 1024

	// RealtimeResubscribeDelay is the pause before a dropped Redis relay subscription is retried.
	RealtimeResubscribeDelay = 2 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRetryAfter    = "Retry-After"

	ContentTypeJSON = "application/json; charset=utf-8"
)
