// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/core/library"
	"github.com/taibuivan/vodstrm/internal/core/playsource"
)

/*
TestBuildPaths_Movie covers sanitizing and the single movie path.
*/
func TestBuildPaths_Movie(t *testing.T) {
	episodes := []playsource.Episode{{Label: "正片", URL: "http://x/y.m3u8"}, {Label: "HD", URL: "http://x/z.m3u8"}}

	got := library.BuildPaths("Foo: Bar", "2020", library.Movie, episodes)

	require.Len(t, got, 1)
	assert.Equal(t, "movies/Foo Bar (2020)/Foo Bar (2020).strm", got[0].Path)
	assert.Equal(t, episodes[0], got[0].Episode)
	assert.Equal(t, "Foo Bar", library.SanitizeTitle("Foo: Bar"))
}

/*
TestBuildPaths_Series checks the S01E tag derivation.
*/
func TestBuildPaths_Series(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"chinese_label", "第3集", "shows/Show/Season 1/Show - S01E03 - 第3集.strm"},
		{"no_digits", "正片", "shows/Show/Season 1/Show - S01E01 - 正片.strm"},
		{"first_run_only", "第12集 1080P", "shows/Show/Season 1/Show - S01E12 - 第12集 1080P.strm"},
		{"three_digits", "EP120", "shows/Show/Season 1/Show - S01E120 - EP120.strm"},
		{"label_separator_stripped", "1/2", "shows/Show/Season 1/Show - S01E01 - 12.strm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := library.BuildPaths("Show", "", library.Series, []playsource.Episode{{Label: tt.label, URL: "u"}})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Path)
		})
	}
}

/*
TestBuildPaths_SeriesWithYear keeps the year on the folder only.
*/
func TestBuildPaths_SeriesWithYear(t *testing.T) {
	got := library.BuildPaths(" 庆余年 ", "2019", library.Series, []playsource.Episode{{Label: "第1集", URL: "u"}})

	require.Len(t, got, 1)
	assert.Equal(t, "shows/庆余年 (2019)/Season 1/庆余年 - S01E01 - 第1集.strm", got[0].Path)
}

/*
TestBuildPaths_Cap truncates long series to the first 50 episodes.
*/
func TestBuildPaths_Cap(t *testing.T) {
	episodes := make([]playsource.Episode, 0, 75)
	for i := 1; i <= 75; i++ {
		episodes = append(episodes, playsource.Episode{Label: fmt.Sprintf("第%d集", i), URL: "u"})
	}

	got := library.BuildPaths("Show", "", library.Series, episodes)

	require.Len(t, got, 50)
	assert.Equal(t, "第50集", got[49].Episode.Label)
}

/*
TestBuildPaths_DuplicateNumbers keeps file names distinct through the label.
*/
func TestBuildPaths_DuplicateNumbers(t *testing.T) {
	got := library.BuildPaths("Show", "", library.Series, []playsource.Episode{
		{Label: "第1集", URL: "a"},
		{Label: "第1集 加更", URL: "b"},
	})

	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].Path, got[1].Path)
}

func TestArchiveName(t *testing.T) {
	assert.Equal(t, "Foo Bar_Emby_STRM.zip", library.ArchiveName("Foo: Bar"))
}

func TestParseMediaType(t *testing.T) {
	assert.Equal(t, library.Movie, library.ParseMediaType("movie"))
	assert.Equal(t, library.Movie, library.ParseMediaType(" MOVIE "))
	assert.Equal(t, library.Series, library.ParseMediaType("tv"))
	assert.Equal(t, library.Series, library.ParseMediaType(""))
}
