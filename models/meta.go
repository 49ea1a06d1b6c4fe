// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Meta holds the persistence attributes shared by every stored record.
// It is embedded into each entity so that its fields are flattened into the
// entity's JSON representation.
type Meta struct {
	// ID is the server-generated identifier of the record (UUIDv7).
	// It is assigned once on creation and never changes afterwards.
	ID string `json:"id"`

	// CreatedAt is the UTC time the record was first persisted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the UTC time of the most recent successful write.
	UpdatedAt time.Time `json:"updated_at"`
}

// GetMeta returns a pointer to the embedded Meta so generic code can reach
// the identifier and timestamps of any entity.
func (m *Meta) GetMeta() *Meta {
	return m
}

// Identifiable is implemented by every entity that embeds [Meta].
type Identifiable interface {
	GetMeta() *Meta
}

// MetaOf returns the [Meta] embedded into rec. Records that do not embed
// Meta get a detached zero value.
func MetaOf[T any](rec *T) *Meta {
	if m, ok := any(rec).(Identifiable); ok {
		return m.GetMeta()
	}
	return &Meta{}
}

// StringList is a list of strings persisted as a JSON array in a single
// text column. It keeps list attributes (technologies, tags) portable
// between PostgreSQL and SQLite.
type StringList []string

// Value implements [driver.Valuer].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encoding string list: %w", err)
	}
	return string(b), nil
}

// Scan implements [sql.Scanner].
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("unsupported type for string list")
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decoding string list: %w", err)
	}
	*l = out
	return nil
}
