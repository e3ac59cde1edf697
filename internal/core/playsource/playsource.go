// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package playsource decodes the delimiter-encoded play lists that VOD aggregators
return in vod_play_from / vod_play_url.

# Grammar

	PlayList := Source ($$$ Source)*
	Source   := Episode (# Episode)*
	Episode  := Label ($ Url)?

vod_play_from carries one name per Source; vod_play_url carries the episode
blobs in the same order. Decoding is lossy and total: malformed segments are
dropped or defaulted, never rejected.
*/
package playsource

// # Delimiters

const (
	SourceSeparator  = "$$$"
	EpisodeSeparator = "#"
	FieldSeparator   = "$"
)

// # Domain Types

// Episode is one playable entry of a source.
type Episode struct {
	// Label is the display name ("第1集", "HD"...). Never empty after decoding.
	Label string `json:"name"`
	// URL is the raw address as published upstream, possibly a short link.
	URL string `json:"url"`
}

// PlaySource is one named line ("线路") of a title with its ordered episodes.
type PlaySource struct {
	Name     string    `json:"name"`
	Episodes []Episode `json:"episodes"`
}
