// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/thejerf/suture/v4"
)

// mockService runs until its context is canceled, optionally failing the
// first failures calls to Serve.
type mockService struct {
	name     string
	starts   atomic.Int32
	failures int32
}

var _ suture.Service = (*mockService)(nil)

func newMockService(name string, failures int32) *mockService {
	return &mockService{name: name, failures: failures}
}

func (m *mockService) Serve(ctx context.Context) error {
	if n := m.starts.Add(1); n <= m.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) StartCount() int32 {
	return m.starts.Load()
}

func (m *mockService) String() string {
	return m.name
}
