// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package opsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/basketrec/internal/logging"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
	"github.com/tomtom215/basketrec/internal/supervisor/services"
)

type stubStatus struct{ st recommend.Status }

func (s stubStatus) Status() recommend.Status { return s.st }

type stubTrigger struct {
	mu        sync.Mutex
	err       error
	triggers  []string
	requestID string
}

func (s *stubTrigger) Trigger(ctx context.Context, trigger string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = append(s.triggers, trigger)
	s.requestID = logging.RequestIDFromContext(ctx)
	return s.err
}

func serve(t *testing.T, h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := NewHandler(stubStatus{}, &stubTrigger{}).Router()
	rec := serve(t, h, http.MethodGet, "/healthz", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing X-Request-ID response header")
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     recommend.Status
		wantCode   int
		wantStatus string
	}{
		{
			name:       "not ready before first snapshot",
			status:     recommend.Status{Ready: false, LastError: "no interaction data"},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "error",
		},
		{
			name:       "ready with snapshot",
			status:     recommend.Status{Ready: true, Version: 3, UserCount: 5, ProductCount: 8},
			wantCode:   http.StatusOK,
			wantStatus: "success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := NewHandler(stubStatus{st: tt.status}, &stubTrigger{}).Router()
			rec := serve(t, h, http.MethodGet, "/readyz", nil)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			body := decode(t, rec)
			if body["status"] != tt.wantStatus {
				t.Errorf("body status = %v, want %s", body["status"], tt.wantStatus)
			}
			data, ok := body["data"].(map[string]any)
			if !ok {
				t.Fatalf("data = %T, want object", body["data"])
			}
			if data["ready"] != tt.status.Ready {
				t.Errorf("data.ready = %v, want %v", data["ready"], tt.status.Ready)
			}
		})
	}
}

func TestAdminRebuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"queued", nil, http.StatusAccepted},
		{"throttled", services.ErrRebuildThrottled, http.StatusTooManyRequests},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			trigger := &stubTrigger{err: tt.err}
			h := NewHandler(stubStatus{}, trigger).Router()

			rec := serve(t, h, http.MethodPost, "/admin/rebuild", map[string]string{requestIDHeader: "ops-1"})
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if len(trigger.triggers) != 1 || trigger.triggers[0] != services.TriggerAdmin {
				t.Errorf("triggers = %v, want [admin]", trigger.triggers)
			}
			if trigger.requestID != "ops-1" {
				t.Errorf("request id = %q, want ops-1", trigger.requestID)
			}
			if got := rec.Header().Get(requestIDHeader); got != "ops-1" {
				t.Errorf("X-Request-ID = %q, want ops-1", got)
			}
		})
	}
}

func TestAdminRebuild_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	trigger := &stubTrigger{}
	h := NewHandler(stubStatus{}, trigger).Router()
	rec := serve(t, h, http.MethodGet, "/admin/rebuild", nil)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if len(trigger.triggers) != 0 {
		t.Errorf("triggers = %v, want none", trigger.triggers)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	metrics.RecordRebuildSkipped("throttled")

	h := NewHandler(stubStatus{}, &stubTrigger{}).Router()
	rec := serve(t, h, http.MethodGet, "/metrics", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "basketrec_rebuilds_skipped_total") {
		t.Error("metrics output missing basketrec_rebuilds_skipped_total")
	}
}

func TestInstrument_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	counter := metrics.OpsRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")
	before := testutil.ToFloat64(counter)

	h := NewHandler(stubStatus{}, &stubTrigger{}).Router()
	serve(t, h, http.MethodGet, "/healthz", nil)

	if got := testutil.ToFloat64(counter) - before; got < 1 {
		t.Errorf("ops_requests_total{route=/healthz} delta = %v, want >= 1", got)
	}
}

func TestReadyz_WithEngine(t *testing.T) {
	t.Parallel()

	src := sourceFunc(func(context.Context) ([]recommend.Interaction, error) {
		return []recommend.Interaction{{UserID: 1, ProductID: 10, Quantity: 1}}, nil
	})
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), src, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	h := NewHandler(engine, &stubTrigger{}).Router()

	if rec := serve(t, h, http.MethodGet, "/readyz", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("before rebuild status = %d, want 503", rec.Code)
	}
	if err := engine.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if rec := serve(t, h, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Fatalf("after rebuild status = %d, want 200", rec.Code)
	}
}

type sourceFunc func(context.Context) ([]recommend.Interaction, error)

func (f sourceFunc) LoadPaidInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	return f(ctx)
}
