// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/vodstrm/internal/platform/apperr"
)

// MemoryRepository keeps records in process memory.
//
// It is safe for concurrent use. Returned records are copies.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryRepository returns an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*Record)}
}

func (repository *MemoryRepository) Create(_ context.Context, record *Record) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.records[record.ID] = clone(record)
	return nil
}

func (repository *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	records := make([]*Record, 0, len(repository.records))
	for _, record := range repository.records {
		records = append(records, clone(record))
	}
	slices.SortFunc(records, newerFirst)

	return records, nil
}

func (repository *MemoryRepository) Get(_ context.Context, id string) (*Record, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	record, found := repository.records[id]
	if !found {
		return nil, apperr.NotFound("Record")
	}
	return clone(record), nil
}

func (repository *MemoryRepository) Replace(_ context.Context, record *Record) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.records[record.ID]; !found {
		return apperr.NotFound("Record")
	}
	repository.records[record.ID] = clone(record)
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, found := repository.records[id]; !found {
		return apperr.NotFound("Record")
	}
	delete(repository.records, id)
	return nil
}

func (repository *MemoryRepository) Ping(_ context.Context) error {
	return nil
}
