// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/vodstrm/internal/platform/apperr"
	"github.com/taibuivan/vodstrm/internal/platform/constants"
	"github.com/taibuivan/vodstrm/internal/platform/ctxutil"
)

// maxUpstreamBytes bounds aggregator and image bodies.
const maxUpstreamBytes = 16 << 20

// EndpointSource yields the aggregator endpoints in effect for a call.
type EndpointSource interface {
	VodAPI() string
	Sources() []string
}

// Image is a proxied poster.
type Image struct {
	ContentType string
	Body        []byte
}

// Client is the aggregator API client.
//
// The endpoint is read on every call so runtime settings changes apply
// immediately. It is safe for concurrent use.
type Client struct {
	endpoint EndpointSource
	http     *http.Client
}

// NewClient builds a [Client] whose calls time out after timeout.
func NewClient(endpoint EndpointSource, timeout time.Duration) *Client {
	return NewClientWithHTTP(endpoint, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP builds a [Client] on top of an existing http.Client.
func NewClientWithHTTP(endpoint EndpointSource, httpClient *http.Client) *Client {
	return &Client{endpoint: endpoint, http: httpClient}
}

// # Passthrough

/*
Proxy forwards q to the aggregator and returns its JSON body untouched.

Returns:
  - json.RawMessage: the verbatim upstream document
  - error: UPSTREAM_ERROR on transport failure, non-2xx status or a non-JSON body
*/
func (client *Client) Proxy(ctx context.Context, q Query) (json.RawMessage, error) {
	body, err := client.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, client.upstreamFailure(ctx, fmt.Errorf("vod: response is not JSON"))
	}
	return json.RawMessage(body), nil
}

// # Typed Access

// Search runs ac=detail&wd=keyword and returns the decoded items.
func (client *Client) Search(ctx context.Context, keyword string) ([]Item, error) {
	envelope, err := client.decode(ctx, Query{Action: ActionDetail, Keyword: keyword})
	if err != nil {
		return nil, err
	}
	return envelope.List, nil
}

/*
SearchAll runs the same search against every configured source at once.

Each item is tagged with the index and endpoint of the source it came from,
and results keep source order. A failing source is skipped.

Returns:
  - []Item: the merged results, possibly empty
  - error: UPSTREAM_ERROR only when every source failed
*/
func (client *Client) SearchAll(ctx context.Context, keyword string) ([]Item, error) {
	sources := client.endpoint.Sources()
	batches := make([][]Item, len(sources))
	failures := make([]error, len(sources))

	var wg sync.WaitGroup
	for index, source := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()

			envelope, err := client.decodeFrom(ctx, source, Query{Action: ActionDetail, Keyword: keyword})
			if err != nil {
				failures[index] = err
				return
			}
			for i := range envelope.List {
				envelope.List[i].SourceIndex = index
				envelope.List[i].SourceURL = source
			}
			batches[index] = envelope.List
		}()
	}
	wg.Wait()

	merged := make([]Item, 0)
	failed := 0
	for index, batch := range batches {
		if failures[index] != nil {
			failed++
			continue
		}
		merged = append(merged, batch...)
	}

	if len(sources) > 0 && failed == len(sources) {
		return nil, failures[0]
	}

	ctxutil.GetLogger(ctx).DebugContext(ctx, "vod_search_aggregated",
		slog.String("keyword", keyword),
		slog.Int("sources", len(sources)),
		slog.Int("failed", failed),
		slog.Int("items", len(merged)),
	)

	return merged, nil
}

// DetailFrom fetches items by id from the source at index, as listed by
// [EndpointSource.Sources]. An unknown index is a VALIDATION_ERROR.
func (client *Client) DetailFrom(ctx context.Context, index int, ids string) ([]Item, error) {
	sources := client.endpoint.Sources()
	if index < 0 || index >= len(sources) {
		return nil, apperr.ValidationError(fmt.Sprintf("Unknown source index %d", index))
	}

	envelope, err := client.decodeFrom(ctx, sources[index], Query{Action: ActionDetail, IDs: ids})
	if err != nil {
		return nil, err
	}
	for i := range envelope.List {
		envelope.List[i].SourceIndex = index
		envelope.List[i].SourceURL = sources[index]
	}
	return envelope.List, nil
}

// Detail fetches items by id ("1,2,3").
func (client *Client) Detail(ctx context.Context, ids string) ([]Item, error) {
	envelope, err := client.decode(ctx, Query{Action: ActionDetail, IDs: ids})
	if err != nil {
		return nil, err
	}
	return envelope.List, nil
}

// Categories returns the aggregator's category list.
func (client *Client) Categories(ctx context.Context) ([]Category, error) {
	envelope, err := client.decode(ctx, Query{Action: ActionList})
	if err != nil {
		return nil, err
	}
	if envelope.Class == nil {
		return []Category{}, nil
	}
	return envelope.Class, nil
}

// # Image Proxy

// Image fetches a poster with an empty Referer so hot-link protection
// does not reject it.
func (client *Client) Image(ctx context.Context, rawURL string) (*Image, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, apperr.ValidationError("Invalid image URL")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, apperr.ValidationError("Invalid image URL")
	}
	request.Header.Set("User-Agent", constants.DesktopUserAgent)
	request.Header.Set("Referer", "")

	response, err := client.http.Do(request)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "image_proxy_failed", slog.String("error", err.Error()))
		return nil, apperr.NotFound("Image")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.NotFound("Image")
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxUpstreamBytes))
	if err != nil {
		return nil, apperr.NotFound("Image")
	}

	contentType := response.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &Image{ContentType: contentType, Body: body}, nil
}

// # Internals

func (client *Client) decode(ctx context.Context, q Query) (*listEnvelope, error) {
	return client.decodeFrom(ctx, client.endpoint.VodAPI(), q)
}

func (client *Client) decodeFrom(ctx context.Context, rawEndpoint string, q Query) (*listEnvelope, error) {
	body, err := client.fetchFrom(ctx, rawEndpoint, q)
	if err != nil {
		return nil, err
	}

	envelope := &listEnvelope{}
	if err := json.Unmarshal(body, envelope); err != nil {
		return nil, client.upstreamFailure(ctx, fmt.Errorf("vod: decode: %w", err))
	}
	return envelope, nil
}

func (client *Client) fetch(ctx context.Context, q Query) ([]byte, error) {
	return client.fetchFrom(ctx, client.endpoint.VodAPI(), q)
}

func (client *Client) fetchFrom(ctx context.Context, rawEndpoint string, q Query) ([]byte, error) {
	endpoint, err := url.Parse(rawEndpoint)
	if err != nil {
		return nil, client.upstreamFailure(ctx, fmt.Errorf("vod: invalid endpoint: %w", err))
	}

	params := endpoint.Query()
	for key, value := range q.values() {
		params.Set(key, value)
	}
	endpoint.RawQuery = params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, client.upstreamFailure(ctx, err)
	}
	request.Header.Set("User-Agent", constants.DesktopUserAgent)
	request.Header.Set("Accept", "application/json")

	response, err := client.http.Do(request)
	if err != nil {
		return nil, client.upstreamFailure(ctx, fmt.Errorf("vod: request: %w", err))
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, client.upstreamFailure(ctx, fmt.Errorf("vod: unexpected status %d", response.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxUpstreamBytes))
	if err != nil {
		return nil, client.upstreamFailure(ctx, fmt.Errorf("vod: read body: %w", err))
	}

	return body, nil
}

func (client *Client) upstreamFailure(ctx context.Context, cause error) error {
	ctxutil.GetLogger(ctx).WarnContext(ctx, "vod_upstream_failed", slog.String("error", cause.Error()))
	return apperr.Upstream(cause)
}
