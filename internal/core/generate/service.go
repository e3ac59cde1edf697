// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package generate turns a chosen title and play source into a downloadable
STRM archive and remembers what was generated.

Two flows share the same assembly path:

  - Generate: the client supplies the episode list it picked in the UI.
  - SmartSwitch: the server re-searches the aggregator for an existing record,
    picks another play source and rebuilds the record in place.

GenerateBatch runs Generate over a list of requests and reports per-item
outcomes instead of archives.
*/
package generate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/library"
	"github.com/taibuivan/vodstrm/internal/core/playsource"
	"github.com/taibuivan/vodstrm/internal/core/record"
	"github.com/taibuivan/vodstrm/internal/core/vod"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
	"github.com/taibuivan/vodstrm/internal/platform/validate"
	"github.com/taibuivan/vodstrm/pkg/slice"
)

// # Dependencies

// Assembler builds archives.
type Assembler interface {
	Assemble(ctx context.Context, req archive.Request) (*archive.Result, error)
}

// Searcher looks titles up on the aggregator.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]vod.Item, error)
}

// # Types

// Request is the body of POST /api/generate-zip.
type Request struct {
	VodName    string               `json:"vodName"`
	VodYear    string               `json:"vodYear"`
	Type       string               `json:"type"`
	SourceName string               `json:"sourceName"`
	Episodes   []playsource.Episode `json:"episodes"`
}

// SwitchRequest narrows the smart-switch search. Every field is optional.
type SwitchRequest struct {
	Keyword     string `json:"keyword"`
	VodID       string `json:"vodId"`
	SourceIndex *int   `json:"sourceIndex"`
	SourceName  string `json:"sourceName"`
}

// Output is a finished generation.
type Output struct {
	Record *record.Record
	Result *archive.Result
}

// Service coordinates assembly and record keeping.
type Service struct {
	assembler Assembler
	records   *record.Service
	searcher  Searcher
	pause     func(ctx context.Context) error
}

// NewService constructs a generation [Service].
func NewService(assembler Assembler, records *record.Service, searcher Searcher) *Service {
	return &Service{
		assembler: assembler,
		records:   records,
		searcher:  searcher,
		pause:     jitterPause,
	}
}

// # Generate

/*
Generate validates req, assembles the archive and stores a new record.

Returns:
  - *Output: archive, counts and the stored record
  - error: VALIDATION_ERROR, GENERATION_FAILED, or a storage error
*/
func (service *Service) Generate(ctx context.Context, req Request) (*Output, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	build := archive.Request{
		Title:      strings.TrimSpace(req.VodName),
		Year:       strings.TrimSpace(req.VodYear),
		MediaType:  library.ParseMediaType(req.Type),
		SourceName: strings.TrimSpace(req.SourceName),
		Episodes:   req.Episodes,
	}

	result, err := service.assembler.Assemble(ctx, build)
	if err != nil {
		return nil, err
	}

	created, err := service.records.Create(ctx, record.Draft{
		Title:        build.Title,
		Year:         build.Year,
		MediaType:    build.MediaType,
		SourceName:   build.SourceName,
		Files:        result.Files,
		SuccessCount: result.SuccessCount,
		SkippedCount: result.SkippedCount,
	})
	if err != nil {
		return nil, err
	}

	return &Output{Record: created, Result: result}, nil
}

func validateRequest(req Request) error {
	validator := &validate.Validator{}
	validator.
		Required("vodName", library.SanitizeTitle(req.VodName)).
		MaxLen("vodName", req.VodName, 200)
	return validator.Err()
}

// # Smart Switch

/*
SmartSwitch rebuilds an existing record from a freshly searched play source.

Item choice: VodID match, else exact title match, else the first result.
Source choice: SourceName match, else SourceIndex, else the first source whose
name differs from the record's current one, else the first source. Sources
without episodes are not candidates.

The record is replaced in place: same id and creation time.
*/
func (service *Service) SmartSwitch(ctx context.Context, id string, req SwitchRequest) (*Output, error) {
	existing, err := service.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		keyword = existing.Title
	}

	items, err := service.searcher.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	item, found := pickItem(items, req.VodID, existing.Title)
	if !found {
		return nil, apperr.NotFound("Search result")
	}

	sources := slice.Filter(item.Sources(), func(source playsource.PlaySource) bool {
		return len(source.Episodes) > 0
	})
	source, found := pickSource(sources, req, existing.SourceName)
	if !found {
		return nil, apperr.NotFound("Play source")
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "smart_switch_selected",
		slog.String("record_id", existing.ID),
		slog.String("vod_id", item.ID.String()),
		slog.String("from_source", existing.SourceName),
		slog.String("to_source", source.Name),
	)

	result, err := service.assembler.Assemble(ctx, archive.Request{
		Title:      existing.Title,
		Year:       existing.Year,
		MediaType:  existing.MediaType,
		SourceName: source.Name,
		Episodes:   source.Episodes,
	})
	if err != nil {
		return nil, err
	}

	existing.SourceName = source.Name
	existing.Files = result.Files
	existing.SuccessCount = result.SuccessCount
	existing.SkippedCount = result.SkippedCount

	if err := service.records.Replace(ctx, existing); err != nil {
		return nil, err
	}

	return &Output{Record: existing, Result: result}, nil
}

func pickItem(items []vod.Item, vodID, title string) (vod.Item, bool) {
	if len(items) == 0 {
		return vod.Item{}, false
	}

	if vodID = strings.TrimSpace(vodID); vodID != "" {
		for _, item := range items {
			if item.ID.String() == vodID {
				return item, true
			}
		}
	}

	for _, item := range items {
		if strings.TrimSpace(item.Name) == title {
			return item, true
		}
	}

	return items[0], true
}

func pickSource(sources []playsource.PlaySource, req SwitchRequest, current string) (playsource.PlaySource, bool) {
	if len(sources) == 0 {
		return playsource.PlaySource{}, false
	}

	if name := strings.TrimSpace(req.SourceName); name != "" {
		for _, source := range sources {
			if source.Name == name {
				return source, true
			}
		}
	}

	if req.SourceIndex != nil && *req.SourceIndex >= 0 && *req.SourceIndex < len(sources) {
		return sources[*req.SourceIndex], true
	}

	for _, source := range sources {
		if source.Name != current {
			return source, true
		}
	}

	return sources[0], true
}
