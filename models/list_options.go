// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// ListOptions narrows list queries. Filters that an entity does not
// support are ignored by its repository.
type ListOptions struct {
	Featured  *bool
	Published *bool
	Status    string
	Category  string
	Slug      string

	Limit  int
	Offset int
}

// CacheKey returns a stable key describing the options.
func (o ListOptions) CacheKey() string {
	return fmt.Sprintf("list:f=%s:p=%s:s=%s:c=%s:slug=%s:l=%d:o=%d",
		boolKey(o.Featured), boolKey(o.Published), o.Status, o.Category, o.Slug, o.Limit, o.Offset)
}

func boolKey(b *bool) string {
	if b == nil {
		return "-"
	}
	if *b {
		return "1"
	}
	return "0"
}

// ReorderRequest carries record IDs in their new display order.
type ReorderRequest struct {
	IDs []string `json:"ids"`
}
