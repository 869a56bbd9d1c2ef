// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellnab/tellnab/internal/api"
)

func TestReadiness(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	healthy := func(context.Context) error { return nil }

	tests := []struct {
		name       string
		checks     []api.HealthCheck
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all dependencies up",
			checks:     []api.HealthCheck{{Name: "postgres", Check: healthy}, {Name: "relay", Check: healthy}},
			wantStatus: http.StatusOK,
			wantBody:   "ready",
		},
		{
			name: "one dependency down",
			checks: []api.HealthCheck{
				{Name: "postgres", Check: healthy},
				{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.checks, logger)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var envelope struct {
				Data struct {
					Status string `json:"status"`
					Checks []struct {
						Name string `json:"name"`
						OK   bool   `json:"ok"`
					} `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantBody, envelope.Data.Status)
			assert.Len(t, envelope.Data.Checks, len(tt.checks))
		})
	}
}
