// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/record"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
)

func sample(id string, created time.Time) *record.Record {
	return &record.Record{
		ID:        id,
		Title:     "Show " + id,
		Files:     []archive.File{{Path: "shows/x.strm", Content: "http://a"}},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

/*
TestMemoryRepository_ListNewestFirst orders by creation time then id.
*/
func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := record.NewMemoryRepository()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, sample("a", base)))
	require.NoError(t, repo.Create(ctx, sample("c", base.Add(time.Minute))))
	require.NoError(t, repo.Create(ctx, sample("b", base.Add(time.Minute))))

	records, err := repo.List(ctx)

	require.NoError(t, err)
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

/*
TestMemoryRepository_Isolation returns copies that callers may mutate.
*/
func TestMemoryRepository_Isolation(t *testing.T) {
	ctx := context.Background()
	repo := record.NewMemoryRepository()
	original := sample("a", time.Now())
	require.NoError(t, repo.Create(ctx, original))

	original.Files[0].Content = "mutated"
	fetched, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "http://a", fetched.Files[0].Content)

	fetched.Title = "changed"
	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Show a", again.Title)
}

/*
TestMemoryRepository_NotFound reports NOT_FOUND for unknown ids.
*/
func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := record.NewMemoryRepository()

	_, err := repo.Get(ctx, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	err = repo.Replace(ctx, sample("missing", time.Now()))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	err = repo.Delete(ctx, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestMemoryRepository_ReplaceAndDelete updates in place and removes.
*/
func TestMemoryRepository_ReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := record.NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, sample("a", time.Now())))

	updated := sample("a", time.Now())
	updated.SourceName = "ff"
	require.NoError(t, repo.Replace(ctx, updated))

	fetched, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "ff", fetched.SourceName)

	require.NoError(t, repo.Delete(ctx, "a"))
	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
