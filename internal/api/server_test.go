// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tellnab/tellnab/internal/api"
	"github.com/tellnab/tellnab/internal/platform/config"
	"github.com/tellnab/tellnab/internal/platform/sec"
	"github.com/tellnab/tellnab/internal/support/access"
	"github.com/tellnab/tellnab/internal/support/department"
	"github.com/tellnab/tellnab/internal/support/ticket"
	"github.com/tellnab/tellnab/internal/users/auth"
)

type rejectAll struct{}

func (rejectAll) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("no keys in tests")
}

func newTestServer(t *testing.T, relay http.Handler) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ok := func(writer http.ResponseWriter, _ *http.Request) { writer.WriteHeader(http.StatusOK) }
	server := api.NewServer(ctx,
		&config.Config{ServerPort: "0", Environment: "production"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		rejectAll{},
		api.Handlers{
			Liveness:    ok,
			Readiness:   ok,
			Auth:        auth.NewHandler(nil),
			Access:      access.NewHandler(nil),
			Departments: department.NewHandler(nil, nil),
			Tickets:     ticket.NewHandler(nil, nil),
			Realtime:    relay,
		})
	return server.Handler()
}

func TestServerRoutes(t *testing.T) {
	relayHit := false
	handler := newTestServer(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, hasDeadline := request.Context().Deadline()
		relayHit = !hasDeadline
		writer.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"support_requires_auth", http.MethodGet, "/api/v1/support/tickets", "", http.StatusUnauthorized},
		{"acl_requires_auth", http.MethodGet, "/api/v1/support/me/acl", "", http.StatusUnauthorized},
		{"bad_token", http.MethodGet, "/api/v1/support/departments", "Bearer forged", http.StatusUnauthorized},
		{"unknown_route", http.MethodGet, "/api/v2/tickets", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.True(t, relayHit, "relay socket must not inherit the request timeout")
}
