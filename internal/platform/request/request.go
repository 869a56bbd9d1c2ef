// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads path parameters, JSON bodies and the authenticated
caller from inbound HTTP requests. Handlers never touch chi or the context
keys directly.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/ctxutil"
	"github.com/tellnab/tellnab/internal/platform/sec"
	"github.com/tellnab/tellnab/internal/platform/validate"
)

// MaxBodyBytes caps JSON request bodies. Ticket descriptions and messages
// are the largest payloads.
const MaxBodyBytes = 1 << 20

/*
DecodeJSON decodes a single JSON document from the request body.

Returns:
  - error: validate.ErrInvalidJSON for empty, oversized, malformed or trailing input
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, MaxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns a resource identifier path parameter such as a ticket id.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Param returns any other named path parameter, e.g. a role key.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the caller's token claims, or nil on anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims returns the caller's claims.

Returns:
  - error: apperr.Unauthorized if the request carries no verified token
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID is RequiredClaims narrowed to the user id.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
