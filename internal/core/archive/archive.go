// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package archive assembles generated .strm files into an in-memory ZIP.

Episodes are resolved one at a time, in order. A single failed episode is
skipped; only a build that yields nothing at all is an error.
*/
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/taibuivan/vodstrm/internal/core/library"
	"github.com/taibuivan/vodstrm/internal/core/playsource"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
	"github.com/taibuivan/vodstrm/pkg/slice"
)

// Generation failure messages.
const (
	MsgNoValidAddress   = "no valid address"
	MsgResolutionFailed = "resolution failed"
)

// # Types

// Resolver turns a raw episode address into a playable URL.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (string, bool)
}

// File is one .strm entry: its archive path and its exact content.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Request describes one archive build.
type Request struct {
	Title      string
	Year       string
	MediaType  library.MediaType
	SourceName string
	Episodes   []playsource.Episode
}

// Result is a finished build.
type Result struct {
	Archive      []byte
	Files        []File
	SuccessCount int
	SkippedCount int
	DownloadName string
}

// # Assembler

// Assembler builds STRM archives.
type Assembler struct {
	resolver Resolver
	now      func() time.Time
}

// NewAssembler constructs an [Assembler] around resolver.
func NewAssembler(resolver Resolver) *Assembler {
	return &Assembler{resolver: resolver, now: time.Now}
}

/*
Assemble resolves the request's episodes and writes the resulting entries.

Movies use only the first episode: a missing address fails with
"no valid address", while an address that does not resolve yields an empty
archive. Series process the first 50 episodes; addresses containing .m3u8
are used as is, others go through the resolver. Paths are unique: when two
episodes map to the same path the later one wins. Zero resolved episodes
fails with "resolution failed".

Returns:
  - *Result: archive bytes, file list and counts
  - error: apperr GENERATION_FAILED
*/
func (assembler *Assembler) Assemble(ctx context.Context, req Request) (*Result, error) {
	var (
		files []File
		err   error
	)

	if req.MediaType == library.Movie {
		files, err = assembler.movie(ctx, req)
	} else {
		files, err = assembler.series(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	data, err := Write(files, assembler.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	attempted := 1
	if req.MediaType != library.Movie {
		attempted = len(slice.Take(req.Episodes, constants.MaxEpisodes))
	}

	return &Result{
		Archive:      data,
		Files:        files,
		SuccessCount: len(files),
		SkippedCount: attempted - len(files),
		DownloadName: library.ArchiveName(req.Title),
	}, nil
}

func (assembler *Assembler) movie(ctx context.Context, req Request) ([]File, error) {
	if len(req.Episodes) == 0 || strings.TrimSpace(req.Episodes[0].URL) == "" {
		return nil, apperr.Generation(MsgNoValidAddress)
	}

	entry := library.BuildPaths(req.Title, req.Year, library.Movie, req.Episodes)[0]
	resolved, ok := assembler.resolver.Resolve(ctx, entry.Episode.URL)
	if !ok {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "movie_resolution_failed",
			slog.String("title", req.Title),
			slog.String("source", req.SourceName),
		)
		return []File{}, nil
	}

	return []File{{Path: entry.Path, Content: resolved}}, nil
}

func (assembler *Assembler) series(ctx context.Context, req Request) ([]File, error) {
	logger := ctxutil.GetLogger(ctx)
	files := make([]File, 0)
	index := make(map[string]int)

	for _, entry := range library.BuildPaths(req.Title, req.Year, library.Series, req.Episodes) {
		raw := strings.TrimSpace(entry.Episode.URL)
		if raw == "" {
			continue
		}

		resolved, ok := raw, true
		if !strings.Contains(raw, ".m3u8") {
			resolved, ok = assembler.resolver.Resolve(ctx, raw)
		}
		if !ok {
			logger.WarnContext(ctx, "episode_resolution_skipped",
				slog.String("title", req.Title),
				slog.String("episode", entry.Episode.Label),
			)
			continue
		}

		// A later episode with the same path replaces the earlier one.
		if position, seen := index[entry.Path]; seen {
			logger.DebugContext(ctx, "episode_path_replaced", slog.String("path", entry.Path))
			files[position].Content = resolved
			continue
		}

		index[entry.Path] = len(files)
		files = append(files, File{Path: entry.Path, Content: resolved})
	}

	if len(files) == 0 {
		return nil, apperr.Generation(MsgResolutionFailed)
	}

	return files, nil
}

// # ZIP Encoding

// Write encodes files as a ZIP archive. Each entry's content is written
// byte for byte: UTF-8, no trailing newline.
func Write(files []File, modified time.Time) ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)

	for _, file := range files {
		entry, err := writer.CreateHeader(&zip.FileHeader{
			Name:     file.Path,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("archive: create %q: %w", file.Path, err)
		}
		if _, err := entry.Write([]byte(file.Content)); err != nil {
			return nil, fmt.Errorf("archive: write %q: %w", file.Path, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("archive: close: %w", err)
	}

	return buffer.Bytes(), nil
}
