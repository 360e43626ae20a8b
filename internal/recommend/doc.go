// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package recommend implements a purchase-history recommendation engine.
//
// # Pipeline
//
// A rebuild runs the stages in one direction:
//
//	InteractionSource -> BuildMatrix -> {RankPopularity, UserSimilarity, ItemSimilarity} -> Snapshot
//
// The user x product matrix holds lifetime purchase quantities of paid
// orders. Cosine similarity is computed over its rows (users) and columns
// (products); a zero vector has similarity 0 with everything, itself included.
//
// # Queries
//
//   - RecommendForUser: similarity-weighted scores over products the user has
//     not bought; unknown users and users who bought everything get Popular
//   - SimilarItems: item-similarity neighbours of a product
//   - Popular: best sellers by total quantity, ties by product id
//   - PopularInCategory: Popular restricted to one category
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), source, logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Rebuild(ctx); err != nil {
//	    return err
//	}
//	recs, err := engine.RecommendForUser(userID, 6)
//
// # Thread Safety
//
// Each rebuild publishes a new immutable Snapshot through an atomic pointer.
// Queries load the pointer once and never lock, so a query never mixes data
// from two snapshots. Only one rebuild runs at a time; a failed rebuild leaves
// the previous snapshot in place.
package recommend
