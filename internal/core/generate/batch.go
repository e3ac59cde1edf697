// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package generate

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/library"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
)

// # Types

// BatchRequest is the body of POST /api/generate/batch.
type BatchRequest struct {
	Items []Request `json:"items"`
}

// BatchItem is the outcome of one batch entry.
type BatchItem struct {
	VodName      string `json:"vodName"`
	OK           bool   `json:"ok"`
	Code         string `json:"code,omitempty"`
	Error        string `json:"error,omitempty"`
	RecordID     string `json:"recordId,omitempty"`
	SuccessCount int    `json:"successCount"`
	SkippedCount int    `json:"skippedCount"`
	DownloadName string `json:"downloadName,omitempty"`
}

// BatchResult summarises a batch run. Items keep request order.
type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// # Batch

/*
GenerateBatch runs [Service.Generate] for every entry, one after another.

A failing entry is reported in its [BatchItem] and does not stop the batch.
Batches larger than five entries pause between entries so the aggregator and
the link hosts are not hit in a burst. Archives are not returned; each stored
record can be downloaded afterwards.

Returns:
  - *BatchResult: per-entry outcomes
  - error: VALIDATION_ERROR for an empty or oversized batch, or the context
    error when the caller goes away during a pause
*/
func (service *Service) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.Items) == 0 {
		return nil, apperr.ValidationError("Batch has no items")
	}
	if len(req.Items) > constants.MaxBatchItems {
		return nil, apperr.ValidationError(fmt.Sprintf("Batch holds at most %d items", constants.MaxBatchItems))
	}

	logger := ctxutil.GetLogger(ctx)
	spaced := len(req.Items) > constants.BatchPauseThreshold

	result := &BatchResult{Items: make([]BatchItem, 0, len(req.Items))}
	for index, item := range req.Items {
		if spaced && index > 0 {
			if err := service.pause(ctx); err != nil {
				logger.WarnContext(ctx, "batch_generation_aborted",
					slog.Int("completed", index),
					slog.Int("total", len(req.Items)),
				)
				return nil, err
			}
		}

		outcome := BatchItem{VodName: item.VodName}

		output, err := service.Generate(ctx, item)
		if err != nil {
			failure := apperr.As(err)
			if failure == nil {
				failure = apperr.Internal(err)
			}
			outcome.Code = failure.Code
			outcome.Error = failure.Message
			result.Failed++

			logger.WarnContext(ctx, "batch_item_failed",
				slog.Int("index", index),
				slog.String("title", item.VodName),
				slog.String("code", failure.Code),
			)
		} else {
			outcome.OK = true
			outcome.RecordID = output.Record.ID
			outcome.SuccessCount = output.Result.SuccessCount
			outcome.SkippedCount = output.Result.SkippedCount
			outcome.DownloadName = output.Result.DownloadName
			result.Succeeded++
		}

		result.Items = append(result.Items, outcome)
	}

	logger.InfoContext(ctx, "batch_generation_finished",
		slog.Int("total", len(req.Items)),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

// # Stored Archives

// Archive rebuilds the ZIP of a stored record from its file list.
func (service *Service) Archive(ctx context.Context, id string) (*Output, error) {
	stored, err := service.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := archive.Write(stored.Files, stored.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Output{
		Record: stored,
		Result: &archive.Result{
			Archive:      data,
			Files:        stored.Files,
			SuccessCount: stored.SuccessCount,
			SkippedCount: stored.SkippedCount,
			DownloadName: library.ArchiveName(stored.Title),
		},
	}, nil
}

// jitterPause sleeps a random duration in [BatchPauseMin, BatchPauseMax).
func jitterPause(ctx context.Context) error {
	delay := constants.BatchPauseMin + rand.N(constants.BatchPauseMax-constants.BatchPauseMin)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
