// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when the order history contains no paid orders.
	ErrNoData = errors.New("no paid order history available")

	// ErrNotInitialized is returned by queries issued before the first successful rebuild.
	ErrNotInitialized = errors.New("recommendation snapshot not built")

	// ErrProductNotFound is returned when a product has no column in the interaction matrix.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidCount is returned when a query asks for fewer than one result.
	ErrInvalidCount = errors.New("result count must be at least 1")

	// ErrRebuildInProgress is returned when a rebuild is requested while another is running.
	ErrRebuildInProgress = errors.New("rebuild already in progress")

	// ErrSourceUnavailable is returned when the interaction source is short-circuited.
	ErrSourceUnavailable = errors.New("interaction source unavailable")
)

// ProductNotFoundError reports the product id of a failed similarity lookup.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// Is reports whether target is ErrProductNotFound.
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// InsufficientDataError is returned when the history is below the configured minimum.
type InsufficientDataError struct {
	Have int
	Want int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient interactions: have %d, need %d", e.Have, e.Want)
}

// Is reports whether target is ErrNoData when no interactions were loaded at all.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrNoData && e.Have == 0
}
