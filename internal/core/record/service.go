// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
	"github.com/taibuivan/vodstrm/pkg/uuidv7"
)

// Service owns record identity and timestamps on top of a [Repository].
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a record [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

/*
Create stores a new record with a fresh UUIDv7 id.

Returns:
  - *Record: the stored record
  - error: storage failure
*/
func (service *Service) Create(ctx context.Context, draft Draft) (*Record, error) {
	now := service.now().UTC()

	record := &Record{
		ID:           uuidv7.New(),
		Title:        draft.Title,
		Year:         draft.Year,
		MediaType:    draft.MediaType,
		SourceName:   draft.SourceName,
		Files:        draft.Files,
		SuccessCount: draft.SuccessCount,
		SkippedCount: draft.SkippedCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "record_created",
		slog.String("record_id", record.ID),
		slog.String("title", record.Title),
		slog.Int("files", len(record.Files)),
	)

	return record, nil
}

// List returns every record, newest first.
func (service *Service) List(ctx context.Context) ([]*Record, error) {
	return service.repo.List(ctx)
}

// Get returns one record. Malformed ids are reported as not found.
func (service *Service) Get(ctx context.Context, id string) (*Record, error) {
	if !uuidv7.Valid(id) {
		return nil, apperr.NotFound("Record")
	}
	return service.repo.Get(ctx, id)
}

/*
Replace overwrites an existing record's content in place.

ID and CreatedAt are kept; UpdatedAt is refreshed.
*/
func (service *Service) Replace(ctx context.Context, record *Record) error {
	record.UpdatedAt = service.now().UTC()

	if err := service.repo.Replace(ctx, record); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "record_replaced",
		slog.String("record_id", record.ID),
		slog.String("source", record.SourceName),
	)
	return nil
}

// Delete removes a record.
func (service *Service) Delete(ctx context.Context, id string) error {
	if !uuidv7.Valid(id) {
		return apperr.NotFound("Record")
	}
	return service.repo.Delete(ctx, id)
}

// Ping reports whether the backing store is reachable.
func (service *Service) Ping(ctx context.Context) error {
	return service.repo.Ping(ctx)
}
