// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware holds the chi middleware chain: request ids, access
// logs, panic recovery, CORS, per-IP rate limits and bearer authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/tellnab/tellnab/internal/platform/apperr"
	"github.com/tellnab/tellnab/internal/platform/constants"
	"github.com/tellnab/tellnab/internal/platform/ctxutil"
	"github.com/tellnab/tellnab/internal/platform/respond"
	"github.com/tellnab/tellnab/internal/platform/sec"
)

// TokenVerifier checks an access token. *sec.TokenService satisfies it.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

/*
Authenticate resolves "Authorization: Bearer <jwt>" into claims on the
request context.

Description: Requests without the header pass through anonymously so
public routes share the chain. A present but malformed or invalid header
is rejected with 401 instead of being downgraded to anonymous.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			if trace := traceFrom(request.Context()); trace != nil {
				trace.userID = claims.UserID
			}

			context := ctxutil.WithLogAttrs(ctxutil.WithAuthUser(request.Context(), claims),
				"user_id", claims.UserID)
			next.ServeHTTP(writer, request.WithContext(context))
		})
	}
}

// RequireAuth rejects anonymous requests with 401. Mount after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != "" && !strings.ContainsRune(token, ' ')
}
