// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/platform/ctxutil"
	"github.com/tellnab/tellnab/internal/platform/middleware"
	"github.com/tellnab/tellnab/internal/platform/sec"
)

type originConfig struct {
	development bool
	extra       []string
}

func (c originConfig) IsDevelopment() bool       { return c.development }
func (c originConfig) AllowedOrigins() []string { return c.extra }

type fakeVerifier struct {
	claims *sec.AuthClaims
}

func (v fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good-token" {
		return nil, errors.New("bad signature")
	}
	return v.claims, nil
}

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func TestOriginAllowed(t *testing.T) {
	prod := originConfig{extra: []string{"https://partner.example.org"}}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://tellnab.com", true},
		{"https://app.tellnab.com", true},
		{"https://app.tellnab.com:8443", true},
		{"http://app.tellnab.com", false},
		{"https://eviltellnab.com", false},
		{"https://tellnab.com.evil.io", false},
		{"https://partner.example.org", true},
		{"not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.OriginAllowed(prod, tt.origin))
		})
	}

	assert.True(t, middleware.OriginAllowed(originConfig{development: true}, "http://localhost:5173"))
}

func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(originConfig{})(ok)

	request := httptest.NewRequest(http.MethodOptions, "/api/v1/support/tickets", nil)
	request.Header.Set("Origin", "https://app.tellnab.com")
	request.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://app.tellnab.com", recorder.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/api/v1/support/tickets", nil)
	denied.Header.Set("Origin", "https://evil.io")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, denied)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitWith(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 0.5, 1)(ok)

	hit := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)

	limited := hit("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "2", limited.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["code"])

	assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code)
}

func TestAuthenticate(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "0190f4a2-7c3e-7b1a-9d2e-0000000000a1", Role: "agent"}

	var seen *sec.AuthClaims
	handler := middleware.Authenticate(fakeVerifier{claims: claims})(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			seen = ctxutil.GetAuthUser(request.Context())
			writer.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantClaims bool
	}{
		{"anonymous", "", http.StatusOK, false},
		{"valid", "Bearer good-token", http.StatusOK, true},
		{"lowercase_scheme", "bearer good-token", http.StatusOK, true},
		{"wrong_scheme", "Basic good-token", http.StatusUnauthorized, false},
		{"empty_token", "Bearer ", http.StatusUnauthorized, false},
		{"bad_token", "Bearer forged", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantClaims, seen != nil)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(ok)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u1"}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "trace-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "trace-123", seen)
	assert.Equal(t, "trace-123", recorder.Header().Get("X-Request-ID"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", strings.Repeat("x", 200))
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Len(t, seen, 36)
}

func TestStructuredLogger_RecordsUser(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))
	claims := &sec.AuthClaims{UserID: "0190f4a2-7c3e-7b1a-9d2e-0000000000a1"}

	chain := middleware.StructuredLogger(logger)(middleware.Authenticate(fakeVerifier{claims: claims})(ok))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/support/tickets", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	chain.ServeHTTP(httptest.NewRecorder(), request)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
	assert.Equal(t, "http_request_finished", line["msg"])
	assert.Equal(t, claims.UserID, line["user_id"])
	assert.EqualValues(t, http.StatusOK, line["status"])
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil ticket")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "nil ticket")
}
