// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/basketrec/internal/config"
	"github.com/tomtom215/basketrec/internal/metrics"
	"github.com/tomtom215/basketrec/internal/recommend"
)

type fakeSource struct {
	calls atomic.Int32
	err   atomic.Pointer[error]
}

func (f *fakeSource) setErr(err error) {
	if err == nil {
		f.err.Store(nil)
		return
	}
	f.err.Store(&err)
}

func (f *fakeSource) LoadPaidInteractions(context.Context) ([]recommend.Interaction, error) {
	f.calls.Add(1)
	if e := f.err.Load(); e != nil {
		return nil, *e
	}
	return []recommend.Interaction{{UserID: 1, ProductID: 10, Quantity: 1}}, nil
}

func testBreakerConfig() *config.BreakerConfig {
	return &config.BreakerConfig{
		MaxRequests:      1,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 2,
	}
}

func TestBreakerSource_PassesThrough(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	bs := NewBreakerSource("pass-through", src, testBreakerConfig(), zerolog.Nop())

	got, err := bs.LoadPaidInteractions(context.Background())
	if err != nil {
		t.Fatalf("LoadPaidInteractions() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len(interactions) = %d, want 1", len(got))
	}
	if bs.State() != "closed" {
		t.Errorf("State() = %q, want closed", bs.State())
	}
}

func TestBreakerSource_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	boom := errors.New("connection refused")
	src.setErr(boom)
	cfg := testBreakerConfig()
	cfg.Timeout = time.Minute
	bs := NewBreakerSource("opens", src, cfg, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := bs.LoadPaidInteractions(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("call %d error = %v, want %v", i, err, boom)
		}
	}
	if bs.State() != "open" {
		t.Fatalf("State() = %q, want open", bs.State())
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("opens")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}

	_, err := bs.LoadPaidInteractions(context.Background())
	if !errors.Is(err, recommend.ErrSourceUnavailable) {
		t.Fatalf("error while open = %v, want ErrSourceUnavailable", err)
	}
	if src.calls.Load() != 2 {
		t.Errorf("source calls = %d, want 2 (open breaker must not call through)", src.calls.Load())
	}
}

func TestBreakerSource_RecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	src.setErr(errors.New("down"))
	bs := NewBreakerSource("recovers", src, testBreakerConfig(), zerolog.Nop())

	for i := 0; i < 2; i++ {
		_, _ = bs.LoadPaidInteractions(context.Background())
	}
	if bs.State() != "open" {
		t.Fatalf("State() = %q, want open", bs.State())
	}

	src.setErr(nil)
	time.Sleep(80 * time.Millisecond)

	if _, err := bs.LoadPaidInteractions(context.Background()); err != nil {
		t.Fatalf("trial read error = %v, want nil", err)
	}
	if bs.State() != "closed" {
		t.Errorf("State() = %q, want closed after successful trial", bs.State())
	}
}

func TestBreakerSource_CancellationDoesNotTrip(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	src.setErr(context.Canceled)
	bs := NewBreakerSource("cancel", src, testBreakerConfig(), zerolog.Nop())

	for i := 0; i < 5; i++ {
		if _, err := bs.LoadPaidInteractions(context.Background()); !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	}
	if bs.State() != "closed" {
		t.Errorf("State() = %q, want closed", bs.State())
	}
}

func TestBreakerSource_EngineKeepsSnapshotWhileOpen(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	cfg := testBreakerConfig()
	cfg.Timeout = time.Minute
	bs := NewBreakerSource("engine", src, cfg, zerolog.Nop())

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), bs, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := engine.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	src.setErr(errors.New("down"))
	for i := 0; i < 3; i++ {
		_ = engine.Rebuild(context.Background())
	}

	err = engine.Rebuild(context.Background())
	if !errors.Is(err, recommend.ErrSourceUnavailable) {
		t.Fatalf("Rebuild() error = %v, want ErrSourceUnavailable", err)
	}
	if snap := engine.Snapshot(); snap == nil || snap.Version != 1 {
		t.Errorf("snapshot = %+v, want version 1 kept", snap)
	}
}
