// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared, so struct
// metadata is parsed once. Failures are returned as *StructError holding one
// FieldError per failed field, with the field's full namespace in the message:
//
//	type Query struct {
//	    N int `validate:"min=1,max=100"`
//	}
//
//	if err := validation.ValidateStruct(&Query{N: 0}); err != nil {
//	    fmt.Println(err) // "Query.N must be at least 1"
//	}
//
// time.Duration fields accept duration parameters, e.g. `validate:"gt=0s"`.
package validation
