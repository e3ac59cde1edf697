// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vod_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/core/vod"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
)

type staticEndpoint string

func (e staticEndpoint) VodAPI() string { return string(e) }
func (e staticEndpoint) Sources() []string { return []string{string(e)} }

// sourceList fans searches out to several endpoints.
type sourceList []string

func (l sourceList) VodAPI() string { return l[0] }
func (l sourceList) Sources() []string { return l }

const detailBody = `{
	"code": 1,
	"list": [{
		"vod_id": 42,
		"vod_name": "Show",
		"vod_year": "2021",
		"type_name": "剧集",
		"vod_play_from": "lz$$$ff",
		"vod_play_url": "第1集$http://a/1.m3u8#第2集$http://a/2.m3u8$$$第1集$http://b/1"
	}],
	"class": [{"type_id": 1, "type_name": "电影"}, {"type_id": "2", "type_name": "剧集"}]
}`

// upstream records the query of every call and answers with body.
type upstream struct {
	mu      sync.Mutex
	queries []url.Values
	status  int
	body    string
}

func (u *upstream) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	u.mu.Lock()
	u.queries = append(u.queries, request.URL.Query())
	u.mu.Unlock()

	writer.WriteHeader(u.status)
	_, _ = writer.Write([]byte(u.body))
}

func (u *upstream) last() url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.queries[len(u.queries)-1]
}

func newUpstream(t *testing.T, status int, body string) (*upstream, *vod.Client) {
	t.Helper()

	fake := &upstream{status: status, body: body}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return fake, vod.NewClient(staticEndpoint(server.URL+"/api.php/provide/vod/"), 2*time.Second)
}

/*
TestProxy_ForwardsParameters checks defaults and passthrough of each field.
*/
func TestProxy_ForwardsParameters(t *testing.T) {
	tests := []struct {
		name  string
		query vod.Query
		want  url.Values
	}{
		{"defaults", vod.Query{}, url.Values{"ac": {"list"}, "pg": {"1"}}},
		{
			"search",
			vod.Query{Action: "detail", Keyword: "庆余年", Page: 3, Type: "2"},
			url.Values{"ac": {"detail"}, "pg": {"3"}, "t": {"2"}, "wd": {"庆余年"}},
		},
		{"ids", vod.Query{Action: "detail", IDs: "1,2"}, url.Values{"ac": {"detail"}, "pg": {"1"}, "ids": {"1,2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, client := newUpstream(t, http.StatusOK, `{"list":[]}`)

			body, err := client.Proxy(context.Background(), tt.query)

			require.NoError(t, err)
			assert.JSONEq(t, `{"list":[]}`, string(body))
			assert.Equal(t, tt.want, fake.last())
		})
	}
}

/*
TestProxy_UpstreamFailures maps every failure mode to UPSTREAM_ERROR.
*/
func TestProxy_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server_error", http.StatusInternalServerError, `{}`},
		{"not_found", http.StatusNotFound, `{}`},
		{"html", http.StatusOK, `<html>blocked</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newUpstream(t, tt.status, tt.body)

			_, err := client.Proxy(context.Background(), vod.Query{})

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeUpstream, appError.Code)
			assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		client := vod.NewClient(staticEndpoint("http://127.0.0.1:1/api"), time.Second)
		_, err := client.Proxy(context.Background(), vod.Query{})
		assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
	})
}

/*
TestDetail_DecodesItems accepts numeric ids and decodes play sources.
*/
func TestDetail_DecodesItems(t *testing.T) {
	fake, client := newUpstream(t, http.StatusOK, detailBody)

	items, err := client.Detail(context.Background(), "42")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "42", fake.last().Get("ids"))

	detail := items[0].ToDetail()
	assert.Equal(t, "42", detail.ID)
	assert.Equal(t, "2021", detail.Year)
	require.Len(t, detail.Sources, 2)
	assert.Equal(t, "lz", detail.Sources[0].Name)
	assert.Len(t, detail.Sources[0].Episodes, 2)
	assert.Equal(t, "http://b/1", detail.Sources[1].Episodes[0].URL)
}

/*
TestCategories_MixedIDs decodes ids given as numbers or strings.
*/
func TestCategories_MixedIDs(t *testing.T) {
	_, client := newUpstream(t, http.StatusOK, detailBody)

	categories, err := client.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "1", categories[0].ID.String())
	assert.Equal(t, "2", categories[1].ID.String())
}

/*
TestFlex_Unmarshal covers the accepted encodings.
*/
func TestFlex_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`12`, "12"},
		{`" 2020 "`, "2020"},
		{`null`, ""},
	}

	for _, tt := range tests {
		var value vod.Flex
		require.NoError(t, json.Unmarshal([]byte(tt.input), &value), tt.input)
		assert.Equal(t, tt.want, value.String())
	}

	var value vod.Flex
	assert.Error(t, json.Unmarshal([]byte(`{}`), &value))
}

/*
TestImage_EmptyReferer forwards the poster with no Referer header.
*/
func TestImage_EmptyReferer(t *testing.T) {
	var (
		mu      sync.Mutex
		referer []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		referer = request.Header.Values("Referer")
		mu.Unlock()
		writer.Header().Set("Content-Type", "image/png")
		_, _ = writer.Write([]byte("PNG"))
	}))
	defer server.Close()

	client := vod.NewClient(staticEndpoint(server.URL), time.Second)

	image, err := client.Image(context.Background(), server.URL+"/poster.png")

	require.NoError(t, err)
	assert.Equal(t, "image/png", image.ContentType)
	assert.Equal(t, []byte("PNG"), image.Body)
	mu.Lock()
	for _, value := range referer {
		assert.Empty(t, value)
	}
	mu.Unlock()

	_, err = client.Image(context.Background(), "javascript:alert(1)")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func startUpstream(t *testing.T, status int, body string) (*upstream, string) {
	t.Helper()

	fake := &upstream{status: status, body: body}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return fake, server.URL + "/api.php/provide/vod/"
}

/*
TestSearchAll_MergesSources tags items by source and skips dead sources.
*/
func TestSearchAll_MergesSources(t *testing.T) {
	first, firstURL := startUpstream(t, http.StatusOK, `{"list":[{"vod_id":1,"vod_name":"A"},{"vod_id":2,"vod_name":"B"}]}`)
	_, deadURL := startUpstream(t, http.StatusBadGateway, `down`)
	third, thirdURL := startUpstream(t, http.StatusOK, `{"list":[{"vod_id":"9","vod_name":"A"}]}`)

	client := vod.NewClient(sourceList{firstURL, deadURL, thirdURL}, 2*time.Second)

	items, err := client.SearchAll(context.Background(), "A")

	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "1", items[0].ID.String())
	assert.Equal(t, 0, items[0].SourceIndex)
	assert.Equal(t, firstURL, items[0].SourceURL)
	assert.Equal(t, 0, items[1].SourceIndex)
	assert.Equal(t, "9", items[2].ID.String())
	assert.Equal(t, 2, items[2].SourceIndex)
	assert.Equal(t, thirdURL, items[2].SourceURL)

	for _, fake := range []*upstream{first, third} {
		assert.Equal(t, "detail", fake.last().Get("ac"))
		assert.Equal(t, "A", fake.last().Get("wd"))
	}

	encoded, err := json.Marshal(items[2])
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"_source_index":2`)
}

/*
TestSearchAll_EverySourceDown fails with UPSTREAM_ERROR.
*/
func TestSearchAll_EverySourceDown(t *testing.T) {
	_, deadURL := startUpstream(t, http.StatusInternalServerError, `down`)
	client := vod.NewClient(sourceList{deadURL, "http://127.0.0.1:1/api"}, time.Second)

	items, err := client.SearchAll(context.Background(), "A")

	assert.Nil(t, items)
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
}

/*
TestDetailFrom_SelectsSource queries the indexed source and rejects unknown indexes.
*/
func TestDetailFrom_SelectsSource(t *testing.T) {
	first, firstURL := startUpstream(t, http.StatusOK, `{"list":[]}`)
	second, secondURL := startUpstream(t, http.StatusOK, detailBody)
	client := vod.NewClient(sourceList{firstURL, secondURL}, 2*time.Second)

	items, err := client.DetailFrom(context.Background(), 1, "42")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].SourceIndex)
	assert.Equal(t, "42", second.last().Get("ids"))

	first.mu.Lock()
	assert.Empty(t, first.queries)
	first.mu.Unlock()

	for _, index := range []int{-1, 2} {
		_, err := client.DetailFrom(context.Background(), index, "42")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), index)
	}
}
