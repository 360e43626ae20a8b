// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	a, b := GenerateRequestID(), GenerateRequestID()
	if len(a) != 36 {
		t.Errorf("len(GenerateRequestID()) = %d, want 36", len(a))
	}
	if a == b {
		t.Error("GenerateRequestID() returned the same ID twice")
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
}

func TestTriggerContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithTrigger(context.Background(), "schedule")
	if got := TriggerFromContext(ctx); got != "schedule" {
		t.Errorf("TriggerFromContext() = %q, want schedule", got)
	}
	if got := TriggerFromContext(context.Background()); got != "" {
		t.Errorf("TriggerFromContext(empty) = %q, want empty", got)
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ctx     context.Context
		want    []string
		notWant []string
	}{
		{
			name:    "no fields",
			ctx:     context.Background(),
			notWant: []string{"request_id", "trigger"},
		},
		{
			name: "request and trigger",
			ctx:  ContextWithTrigger(ContextWithRequestID(context.Background(), "abc"), "http"),
			want: []string{`"request_id":"abc"`, `"trigger":"http"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			Ctx(tt.ctx, NewTestLogger(&buf)).Info().Msg("rebuild requested")

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %s: %s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output should not contain %s: %s", nw, out)
				}
			}
		})
	}
}
