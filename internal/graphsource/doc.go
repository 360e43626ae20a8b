// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package graphsource reads the paid order history from a Neo4j purchase graph.
//
// The expected graph shape is:
//
//	(:User {id})-[:PLACED]->(:Order {id, status, created_at})
//	(:Order)-[:CONTAINS {quantity}]->(:Product {id, name, volume, strength, price})
//	(:Product)-[:IN_CATEGORY]->(:Category {id, name})
//	(:Product)-[:MADE_BY]->(:Brand {id, name})
//
// Source implements recommend.InteractionSource with a single read-routed
// Cypher query, so the engine can be rebuilt from a graph store with the
// same semantics as the SQL sources: one interaction per order line of every
// order whose status is "paid".
package graphsource
