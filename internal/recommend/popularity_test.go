// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"reflect"
	"testing"
)

func TestRankPopularity(t *testing.T) {
	t.Parallel()

	m, catalog, err := BuildMatrix(fixtureInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	p := RankPopularity(m)

	tests := []struct {
		name string
		got  []int64
		want []int64
	}{
		{"top all, tie 10/11 by id", p.Top(10), []int64{20, 10, 11, 21, 30}},
		{"top 2", p.Top(2), []int64{20, 10}},
		{"top 0", p.Top(0), []int64{}},
		{"wine", p.InCategory(catalog, 1, 5), []int64{10, 11}},
		{"beer truncated", p.InCategory(catalog, 2, 1), []int64{20}},
		{"unknown category", p.InCategory(catalog, 9, 5), []int64{}},
		{"category n=0", p.InCategory(catalog, 1, 0), []int64{}},
	}

	for _, tt := range tests {
		if !reflect.DeepEqual(tt.got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if p.Len() != 5 {
		t.Errorf("Len() = %d, want 5", p.Len())
	}
	if got := p.Total(20); got != 4 {
		t.Errorf("Total(20) = %v, want 4", got)
	}
}

func TestPopularity_TopReturnsCopy(t *testing.T) {
	t.Parallel()

	m, _, err := BuildMatrix(fixtureInteractions())
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	p := RankPopularity(m)

	top := p.Top(1)
	top[0] = 99

	if got := p.Top(1); got[0] != 20 {
		t.Errorf("Top(1) = %v after mutating earlier result, want [20]", got)
	}
}
