// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playsource

import (
	"fmt"
	"strings"

	"github.com/taibuivan/vodstrm/internal/platform/constants"
)

// Decode parses the parallel play-from / play-url strings into sources.
//
// Names and blobs are paired by index up to the shorter list; extras on
// either side are discarded. Order is preserved. An empty name becomes
// "线路N" (1-based position).
func Decode(playFrom, playURL string) []PlaySource {
	names := splitNonEmpty(playFrom, SourceSeparator)
	blobs := splitNonEmpty(playURL, SourceSeparator)

	count := min(len(names), len(blobs))
	sources := make([]PlaySource, 0, count)

	for i := 0; i < count; i++ {
		name := strings.TrimSpace(names[i])
		if name == "" {
			name = fmt.Sprintf("线路%d", i+1)
		}
		sources = append(sources, PlaySource{
			Name:     name,
			Episodes: DecodeEpisodes(blobs[i]),
		})
	}

	return sources
}

// DecodeEpisodes parses a single source blob ("label$url#label$url").
// Entries without a usable URL are dropped.
func DecodeEpisodes(blob string) []Episode {
	episodes := make([]Episode, 0)
	for _, entry := range strings.Split(blob, EpisodeSeparator) {
		if episode, ok := decodeEpisode(entry); ok {
			episodes = append(episodes, episode)
		}
	}
	return episodes
}

// decodeEpisode splits an entry on the first "$".
//
// Without a "$" the entry is url-less and dropped, unless the entry itself is
// an absolute http(s) address, in which case it becomes the URL under the
// default label.
func decodeEpisode(entry string) (Episode, bool) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return Episode{}, false
	}

	label, rawURL, found := strings.Cut(entry, FieldSeparator)
	if !found {
		if !isAbsoluteHTTP(entry) {
			return Episode{}, false
		}
		label, rawURL = "", entry
	}

	label = strings.TrimSpace(label)
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Episode{}, false
	}
	if label == "" {
		label = constants.DefaultEpisodeLabel
	}

	return Episode{Label: label, URL: rawURL}, true
}

// splitNonEmpty splits s on sep, returning nil for a blank input so that a
// missing field pairs with nothing.
func splitNonEmpty(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, sep)
}

func isAbsoluteHTTP(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
