// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package settings holds the runtime-mutable configuration of the service.

The aggregator endpoint starts from the VOD_API environment value and the
search source list from VOD_SOURCES. Either may be replaced by any client for
the rest of the process lifetime. Nothing is
persisted; a restart restores the environment default.
*/
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
	"github.com/taibuivan/vodstrm/internal/platform/validate"
)

// Settings is a snapshot of the runtime configuration.
//
// VodAPI serves detail, category and passthrough calls. Sources is the set
// an aggregated search fans out to; an empty list means VodAPI alone.
type Settings struct {
	VodAPI  string   `json:"vodApi"`
	Sources []string `json:"sources"`
}

// Update is a partial change; nil fields are left untouched.
type Update struct {
	VodAPI  *string   `json:"vodApi"`
	Sources *[]string `json:"sources"`
}

// Store guards the current [Settings].
//
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current Settings
}

// NewStore seeds a [Store] with the startup endpoint and optional extra
// search sources.
func NewStore(vodAPI string, sources ...string) *Store {
	return &Store{current: Settings{
		VodAPI:  strings.TrimSpace(vodAPI),
		Sources: normalizeSources(sources),
	}}
}

// Get returns a copy of the current settings.
func (store *Store) Get() Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()

	snapshot := store.current
	snapshot.Sources = slices.Clone(store.current.Sources)
	if snapshot.Sources == nil {
		snapshot.Sources = []string{}
	}
	return snapshot
}

// VodAPI returns the current aggregator endpoint.
func (store *Store) VodAPI() string {
	return store.Get().VodAPI
}

// Sources returns the endpoints an aggregated search queries, in order.
// Without a configured list it is just the current VodAPI.
func (store *Store) Sources() []string {
	snapshot := store.Get()
	if len(snapshot.Sources) == 0 {
		return []string{snapshot.VodAPI}
	}
	return snapshot.Sources
}

/*
Apply validates and applies a partial update. Nothing changes unless every
supplied field is valid.

Returns:
  - Settings: the settings in effect after the update
  - error: VALIDATION_ERROR when vodApi or a sources entry is not an absolute http(s) URL
*/
func (store *Store) Apply(ctx context.Context, update Update) (Settings, error) {
	if update.VodAPI == nil && update.Sources == nil {
		return store.Get(), nil
	}

	validator := &validate.Validator{}

	var endpoint string
	if update.VodAPI != nil {
		endpoint = strings.TrimSpace(*update.VodAPI)
		validator.Required("vodApi", endpoint).HTTPURL("vodApi", endpoint)
	}

	var sources []string
	if update.Sources != nil {
		sources = normalizeSources(*update.Sources)
		for i, source := range sources {
			validator.HTTPURL(fmt.Sprintf("sources[%d]", i), source)
		}
	}

	if err := validator.Err(); err != nil {
		return Settings{}, err
	}

	logger := ctxutil.GetLogger(ctx)

	store.mu.Lock()
	previous := store.current
	if update.VodAPI != nil {
		store.current.VodAPI = endpoint
	}
	if update.Sources != nil {
		store.current.Sources = sources
	}
	store.mu.Unlock()

	if update.VodAPI != nil {
		logger.InfoContext(ctx, "vod_api_updated",
			slog.String("from", previous.VodAPI),
			slog.String("to", endpoint),
		)
	}
	if update.Sources != nil {
		logger.InfoContext(ctx, "vod_sources_updated",
			slog.Int("from_count", len(previous.Sources)),
			slog.Int("to_count", len(sources)),
		)
	}

	return store.Get(), nil
}

// normalizeSources trims entries and drops blanks and repeats.
func normalizeSources(sources []string) []string {
	normalized := make([]string, 0, len(sources))
	for _, source := range sources {
		source = strings.TrimSpace(source)
		if source == "" || slices.Contains(normalized, source) {
			continue
		}
		normalized = append(normalized, source)
	}
	return normalized
}
