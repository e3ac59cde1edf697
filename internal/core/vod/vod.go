// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package vod talks to the Apple-CMS style aggregator API.

Listing and search bodies are forwarded verbatim to the browser UI. The typed
[Item] view exists for the server-side flows (detail decoding, smart switch
and the CLI) that need the play-source fields.
*/
package vod

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/taibuivan/vodstrm/internal/core/playsource"
)

// Aggregator actions.
const (
	ActionList   = "list"
	ActionDetail = "detail"
)

// Query carries the parameters forwarded to the aggregator.
type Query struct {
	Action  string
	Keyword string
	Page    int
	Type    string
	IDs     string
}

// Flex accepts both JSON strings and JSON numbers, as aggregators disagree
// on how to encode ids and years.
type Flex string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flex(n.String())
	return nil
}

// String returns the raw textual value.
func (f Flex) String() string { return string(f) }

// Item is one catalogue entry as returned by ac=detail.
type Item struct {
	ID       Flex   `json:"vod_id"`
	Name     string `json:"vod_name"`
	Year     Flex   `json:"vod_year"`
	TypeName string `json:"type_name"`
	Pic      string `json:"vod_pic"`
	Remarks  string `json:"vod_remarks"`
	PlayFrom string `json:"vod_play_from"`
	PlayURL  string `json:"vod_play_url"`

	// Set by aggregated search and per-source detail, never by the upstream.
	SourceIndex int    `json:"_source_index"`
	SourceURL   string `json:"_source_url,omitempty"`
}

// Sources decodes the item's play lists.
func (item Item) Sources() []playsource.PlaySource {
	return playsource.Decode(item.PlayFrom, item.PlayURL)
}

// Category is one entry of the aggregator's "class" array.
type Category struct {
	ID   Flex   `json:"type_id"`
	Name string `json:"type_name"`
}

// listEnvelope is the subset of the aggregator response the server decodes.
type listEnvelope struct {
	Code  json.RawMessage `json:"code"`
	List  []Item          `json:"list"`
	Class []Category      `json:"class"`
}

// Detail is the decoded form served by GET /api/vod/detail.
type Detail struct {
	ID          string                  `json:"vodId"`
	Name        string                  `json:"vodName"`
	Year        string                  `json:"vodYear"`
	TypeName    string                  `json:"typeName"`
	Pic         string                  `json:"vodPic"`
	Sources     []playsource.PlaySource `json:"sources"`
	SourceIndex int                     `json:"sourceIndex"`
}

// ToDetail projects an [Item] into its decoded form.
func (item Item) ToDetail() Detail {
	return Detail{
		ID:          item.ID.String(),
		Name:        item.Name,
		Year:        item.Year.String(),
		TypeName:    item.TypeName,
		Pic:         item.Pic,
		Sources:     item.Sources(),
		SourceIndex: item.SourceIndex,
	}
}

// values renders q as aggregator query parameters. Action defaults to
// "list" and Page to 1.
func (q Query) values() map[string]string {
	params := map[string]string{
		"ac": ActionList,
		"pg": "1",
	}
	if action := strings.TrimSpace(q.Action); action != "" {
		params["ac"] = action
	}
	if q.Page > 0 {
		params["pg"] = strconv.Itoa(q.Page)
	}
	if t := strings.TrimSpace(q.Type); t != "" {
		params["t"] = t
	}
	if keyword := strings.TrimSpace(q.Keyword); keyword != "" {
		params["wd"] = keyword
	}
	if ids := strings.TrimSpace(q.IDs); ids != "" {
		params["ids"] = ids
	}
	return params
}
