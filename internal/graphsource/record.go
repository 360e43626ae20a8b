// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package graphsource

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tomtom215/basketrec/internal/recommend"
)

// interactionFromRecord converts one result row into an Interaction.
// Ids and quantity are required; product metadata may be missing and then
// reads as zero or empty.
func interactionFromRecord(row map[string]any) (recommend.Interaction, error) {
	var (
		in  recommend.Interaction
		err error
	)

	if in.UserID, err = requiredInt(row, "user_id"); err != nil {
		return in, err
	}
	if in.ProductID, err = requiredInt(row, "product_id"); err != nil {
		return in, err
	}
	if in.CategoryID, err = requiredInt(row, "category_id"); err != nil {
		return in, err
	}
	if in.BrandID, err = requiredInt(row, "brand_id"); err != nil {
		return in, err
	}

	qty, ok, err := toFloat(row["quantity"])
	if err != nil {
		return in, fmt.Errorf("quantity: %w", err)
	}
	if !ok {
		return in, fmt.Errorf("quantity is missing")
	}
	in.Quantity = qty

	if in.OrderedAt, err = toTime(row["created_at"]); err != nil {
		return in, fmt.Errorf("created_at: %w", err)
	}

	for key, dst := range map[string]*float64{"volume": &in.Volume, "strength": &in.Strength, "price": &in.Price} {
		v, _, err := toFloat(row[key])
		if err != nil {
			return in, fmt.Errorf("%s: %w", key, err)
		}
		*dst = v
	}

	in.ProductName = toString(row["product_name"])
	in.CategoryName = toString(row["category_name"])
	in.BrandName = toString(row["brand_name"])

	return in, nil
}

func requiredInt(row map[string]any, key string) (int64, error) {
	switch v := row[key].(type) {
	case int64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("%s is missing", key)
	default:
		return 0, fmt.Errorf("%s: unexpected type %T", key, v)
	}
}

// toFloat accepts Neo4j integers and floats. ok is false for null.
func toFloat(v any) (f float64, ok bool, err error) {
	switch n := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return n, true, nil
	case int64:
		return float64(n), true, nil
	default:
		return 0, false, fmt.Errorf("unexpected type %T", v)
	}
}

// toTime accepts the temporal types the driver returns for created_at.
// A missing timestamp reads as the zero time.
func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case neo4j.LocalDateTime:
		return t.Time(), nil
	case neo4j.Date:
		return t.Time(), nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, err
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected type %T", v)
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
