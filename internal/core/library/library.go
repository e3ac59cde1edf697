// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library derives the Emby/Jellyfin folder layout for generated .strm files.

# Layout

	movies/<Title (Year)>/<Title (Year)>.strm
	shows/<Title (Year)>/Season 1/<Title> - S01E<NN> - <Label>.strm

Every function here is pure: no I/O, no failures. Malformed input degrades
(digit-less labels become episode 1).
*/
package library

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/vodstrm/internal/core/playsource"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
	"github.com/taibuivan/vodstrm/pkg/slice"
)

// # Media Types

// MediaType selects the folder convention.
type MediaType string

const (
	Movie  MediaType = "movie"
	Series MediaType = "series"
)

// ParseMediaType maps request values onto a [MediaType]. Only "movie" selects
// the movie layout; "tv", "series" and anything else are series.
func ParseMediaType(value string) MediaType {
	if strings.EqualFold(strings.TrimSpace(value), string(Movie)) {
		return Movie
	}
	return Series
}

// Entry pairs an archive path with the episode it was derived from.
type Entry struct {
	Path    string
	Episode playsource.Episode
}

var (
	// forbiddenChars are stripped from every path segment.
	forbiddenChars = strings.NewReplacer(
		`\`, "", "/", "", ":", "", "*", "", "?", "", `"`, "", "<", "", ">", "", "|", "",
	)

	firstDigits = regexp.MustCompile(`\d+`)
)

// # Naming

// SanitizeTitle normalizes s to NFC, removes \ / : * ? " < > | and trims.
func SanitizeTitle(s string) string {
	return strings.TrimSpace(forbiddenChars.Replace(norm.NFC.String(s)))
}

// FolderName is "Title (Year)" or just "Title" when year is blank.
func FolderName(title, year string) string {
	safeTitle := SanitizeTitle(title)
	safeYear := SanitizeTitle(year)
	if safeYear == "" {
		return safeTitle
	}
	return strings.TrimSpace(fmt.Sprintf("%s (%s)", safeTitle, safeYear))
}

// ArchiveName is the attachment filename for a title's download.
func ArchiveName(title string) string {
	return SanitizeTitle(title) + constants.ArchiveSuffix
}

// EpisodeNumber is the first run of digits in label, or 1 when there is none.
func EpisodeNumber(label string) int {
	match := firstDigits.FindString(label)
	if match == "" {
		return 1
	}
	number, err := strconv.Atoi(match)
	if err != nil {
		return 1
	}
	return number
}

// EpisodeTag formats the season/episode marker. Season is always 01.
func EpisodeTag(number int) string {
	return fmt.Sprintf("S01E%02d", number)
}

// # Path Building

// BuildPaths derives archive paths for a title.
//
// Movies yield exactly one entry (for the first episode, or an empty episode
// when none is given). Series yield one entry per episode, capped at
// [constants.MaxEpisodes].
func BuildPaths(title, year string, mediaType MediaType, episodes []playsource.Episode) []Entry {
	safeTitle := SanitizeTitle(title)
	folder := FolderName(title, year)

	if mediaType == Movie {
		var first playsource.Episode
		if len(episodes) > 0 {
			first = episodes[0]
		}
		return []Entry{{Path: MoviePath(folder), Episode: first}}
	}

	capped := slice.Take(episodes, constants.MaxEpisodes)
	entries := make([]Entry, 0, len(capped))
	for _, episode := range capped {
		entries = append(entries, Entry{
			Path:    EpisodePath(safeTitle, folder, episode.Label),
			Episode: episode,
		})
	}
	return entries
}

// MoviePath is movies/<folder>/<folder>.strm.
func MoviePath(folder string) string {
	return "movies/" + folder + "/" + folder + ".strm"
}

// EpisodePath is shows/<folder>/Season 1/<title> - S01E<NN> - <label>.strm.
func EpisodePath(safeTitle, folder, label string) string {
	fileName := fmt.Sprintf("%s - %s - %s.strm", safeTitle, EpisodeTag(EpisodeNumber(label)), SanitizeTitle(label))
	return "shows/" + folder + "/Season 1/" + fileName
}
