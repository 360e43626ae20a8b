// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sync"
)

// SimilarityMatrix is a square, symmetric matrix of cosine similarities.
type SimilarityMatrix struct {
	n    int
	vals []float64
}

// Size returns the number of rows (and columns).
func (s *SimilarityMatrix) Size() int {
	return s.n
}

// At returns the similarity between vectors i and j.
func (s *SimilarityMatrix) At(i, j int) float64 {
	return s.vals[i*s.n+j]
}

// Row returns a copy of row i.
func (s *SimilarityMatrix) Row(i int) []float64 {
	return slices.Clone(s.row(i))
}

func (s *SimilarityMatrix) row(i int) []float64 {
	return s.vals[i*s.n : (i+1)*s.n]
}

// UserSimilarity computes the cosine similarity of every pair of matrix rows.
func UserSimilarity(ctx context.Context, m *Matrix, workers int) (*SimilarityMatrix, error) {
	return cosineAll(ctx, m.cells, m.Rows(), m.Cols(), workers)
}

// ItemSimilarity computes the cosine similarity of every pair of matrix columns.
func ItemSimilarity(ctx context.Context, m *Matrix, workers int) (*SimilarityMatrix, error) {
	return cosineAll(ctx, m.transpose(), m.Cols(), m.Rows(), workers)
}

// cosineAll computes pairwise cosine similarity of the n row-major vectors of
// length dim stored in data. Each row job fills the upper triangle of its row
// and mirrors it, so no two jobs write the same cell.
func cosineAll(ctx context.Context, data []float64, n, dim, workers int) (*SimilarityMatrix, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	vec := func(i int) []float64 { return data[i*dim : (i+1)*dim] }

	norms := make([]float64, n)
	for i := range norms {
		norms[i] = norm(vec(i))
	}

	s := &SimilarityMatrix{n: n, vals: make([]float64, n*n)}

	jobs := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if norms[i] == 0 {
					continue
				}
				s.vals[i*n+i] = 1
				a := vec(i)
				for j := i + 1; j < n; j++ {
					if norms[j] == 0 {
						continue
					}
					sim := cosine(a, vec(j), norms[i], norms[j])
					s.vals[i*n+j] = sim
					s.vals[j*n+i] = sim
				}
			}
		}()
	}

	var err error
feed:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return s, nil
}

// cosine returns dot(a, b) / (na * nb) clamped to [-1, 1].
// Callers guarantee both norms are non-zero.
func cosine(a, b []float64, na, nb float64) float64 {
	var dot float64
	for k := range a {
		dot += a[k] * b[k]
	}
	sim := dot / (na * nb)
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	default:
		return sim
	}
}

// norm returns the Euclidean length of v.
func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
