// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/core/archive"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

/*
TestExport_WritesLayout mirrors archive paths under the target directory.
*/
func TestExport_WritesLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := []archive.File{
		{Path: "shows/Show/Season 1/Show - S01E01 - 第1集.strm", Content: "http://cdn/1.m3u8"},
		{Path: "shows/Show/Season 1/Show - S01E02 - 第2集.strm", Content: "http://cdn/2.m3u8"},
	}

	require.NoError(t, archive.Export(fs, "/library", files))

	content, err := afero.ReadFile(fs, "/library/shows/Show/Season 1/Show - S01E02 - 第2集.strm")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/2.m3u8", string(content))
}

/*
TestExport_Overwrites replaces stale content on re-export.
*/
func TestExport_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "movies/Film/Film.strm"

	require.NoError(t, archive.Export(fs, "/lib", []archive.File{{Path: path, Content: "http://old/a.mp4"}}))
	require.NoError(t, archive.Export(fs, "/lib", []archive.File{{Path: path, Content: "http://new/a.mp4"}}))

	content, err := afero.ReadFile(fs, "/lib/"+path)
	require.NoError(t, err)
	assert.Equal(t, "http://new/a.mp4", string(content))
}

/*
TestExport_RejectsEscape refuses paths that climb out of the directory.
*/
func TestExport_RejectsEscape(t *testing.T) {
	err := archive.Export(afero.NewMemMapFs(), "/lib", []archive.File{{Path: "../etc/x.strm", Content: "u"}})
	assert.Error(t, err)
}
