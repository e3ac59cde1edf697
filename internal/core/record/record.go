// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package record keeps the history of generated archives.

A record remembers what was written (title, source, file list) so that it can
be listed, inspected, removed, or rebuilt from another play source.

Backends:

  - Memory: default, lives for the process lifetime.
  - Postgres: DATABASE_URL, schema managed by golang-migrate.
  - Redis: REDIS_URL, JSON documents indexed by a sorted set.
*/
package record

import (
	"context"
	"time"

	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/library"
)

// Record is one generation run.
type Record struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Year         string            `json:"year"`
	MediaType    library.MediaType `json:"type"`
	SourceName   string            `json:"sourceName"`
	Files        []archive.File    `json:"files"`
	SuccessCount int               `json:"successCount"`
	SkippedCount int               `json:"skippedCount"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Draft is the caller-supplied part of a new record.
type Draft struct {
	Title        string
	Year         string
	MediaType    library.MediaType
	SourceName   string
	Files        []archive.File
	SuccessCount int
	SkippedCount int
}

// Repository persists records.
//
// List returns newest first. Get, Replace and Delete fail with NOT_FOUND for
// unknown ids.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context) ([]*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	Replace(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// newerFirst orders records by creation time, then id, descending.
func newerFirst(a, b *Record) int {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	default:
		return 0
	}
}

func clone(record *Record) *Record {
	copied := *record
	copied.Files = append([]archive.File(nil), record.Files...)
	return &copied
}
