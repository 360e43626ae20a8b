// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package recommend

import (
	"context"
	"time"
)

// Interaction is one line item of a paid order joined with the product,
// category and brand it references.
type Interaction struct {
	// UserID is the customer who placed the order.
	UserID int64 `json:"user_id"`

	// ProductID is the purchased product.
	ProductID int64 `json:"product_id"`

	// Quantity is the number of units on the order line.
	Quantity float64 `json:"quantity"`

	// OrderedAt is the creation time of the order.
	OrderedAt time.Time `json:"ordered_at"`

	// CategoryID is the product's category.
	CategoryID int64 `json:"category_id"`

	// BrandID is the product's brand.
	BrandID int64 `json:"brand_id"`

	// Volume is the container volume in litres.
	Volume float64 `json:"volume"`

	// Strength is the alcohol content in percent.
	Strength float64 `json:"strength"`

	// Price is the current list price.
	Price float64 `json:"price"`

	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	BrandName    string `json:"brand_name"`
}

// InteractionSource loads the complete paid-order history.
// This is typically implemented by the database layer.
type InteractionSource interface {
	// LoadPaidInteractions returns every line item of every paid order,
	// ordered by order time. An empty history returns ErrNoData.
	LoadPaidInteractions(ctx context.Context) ([]Interaction, error)
}

// ItemFeatures holds the display attributes of a product.
type ItemFeatures struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category"`
	BrandID      int64   `json:"brand_id"`
	BrandName    string  `json:"brand"`
	Volume       float64 `json:"volume"`
	Strength     float64 `json:"strength"`
	Price        float64 `json:"price"`
}

// Recommendation is a single ranked product returned by the engine.
// Similarity is set by SimilarItems, Popularity by Popular and
// PopularInCategory, Score by RecommendForUser.
type Recommendation struct {
	ProductID  int64    `json:"product_id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Brand      string   `json:"brand"`
	Price      float64  `json:"price"`
	Similarity *float64 `json:"similarity,omitempty"`
	Popularity *float64 `json:"popularity,omitempty"`
	Score      *float64 `json:"score,omitempty"`
}

// newRecommendation copies the display attributes of a catalog entry.
func newRecommendation(f ItemFeatures) Recommendation {
	return Recommendation{
		ProductID: f.ProductID,
		Name:      f.Name,
		Category:  f.CategoryName,
		Brand:     f.BrandName,
		Price:     f.Price,
	}
}

// Operation names a query type exposed by the engine.
type Operation int

const (
	// OpRecommendForUser is a personalized recommendation query.
	OpRecommendForUser Operation = iota
	// OpSimilarItems is an item-to-item similarity query.
	OpSimilarItems
	// OpPopular is a global popularity query.
	OpPopular
	// OpPopularInCategory is a popularity query restricted to one category.
	OpPopularInCategory
)

// String returns the metric label for the operation.
func (o Operation) String() string {
	switch o {
	case OpRecommendForUser:
		return "recommend_for_user"
	case OpSimilarItems:
		return "similar_items"
	case OpPopular:
		return "popular"
	case OpPopularInCategory:
		return "popular_in_category"
	default:
		return "unknown"
	}
}

// Status describes the engine's current snapshot and rebuild state.
type Status struct {
	// Ready is true once a snapshot has been published.
	Ready bool `json:"ready"`

	// Rebuilding is true while a rebuild holds the writer lock.
	Rebuilding bool `json:"rebuilding"`

	// Version is the version of the published snapshot (0 before the first build).
	Version int64 `json:"version"`

	// BuiltAt is when the published snapshot finished building.
	BuiltAt time.Time `json:"built_at,omitempty"`

	// BuildDurationMS is how long the published snapshot took to build.
	BuildDurationMS int64 `json:"build_duration_ms"`

	InteractionCount int `json:"interaction_count"`
	UserCount        int `json:"user_count"`
	ProductCount     int `json:"product_count"`

	// LastError is the error of the most recent failed rebuild, cleared on success.
	LastError string `json:"last_error,omitempty"`

	// LastAttemptAt is when the most recent rebuild finished, successful or not.
	LastAttemptAt time.Time `json:"last_attempt_at,omitempty"`
}
