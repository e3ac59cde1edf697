// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package resolve turns raw episode addresses into playable URLs.

Addresses that already point at a manifest or container (.m3u8, .mp4) are
trusted without a network call. Everything else is requested (HEAD, then GET)
and the post-redirect URL is returned. Each attempt has its own timeout. Failures never escape: a dead link is
simply "not resolved" and the caller skips it.
*/
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/vodstrm/internal/platform/constants"
)

// directMarkers identify URLs that are playable as published.
var directMarkers = []string{".m3u8", ".mp4"}

var errTooManyRedirects = errors.New("resolve: too many redirects")

// IsDirect reports whether url is treated as direct-playable.
func IsDirect(url string) bool {
	for _, marker := range directMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}

// Resolver follows short links with a bounded timeout.
//
// It is safe for concurrent use.
type Resolver struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a [Resolver] whose requests give up after timeout.
func New(timeout time.Duration, logger *slog.Logger) *Resolver {
	return NewWithClient(&http.Client{}, timeout, logger)
}

// NewWithClient builds a [Resolver] on top of an existing client. The
// client's redirect policy is replaced with the resolver's own cap.
func NewWithClient(client *http.Client, timeout time.Duration, logger *slog.Logger) *Resolver {
	followClient := *client
	followClient.CheckRedirect = func(request *http.Request, via []*http.Request) error {
		if len(via) > constants.MaxResolveRedirects {
			return errTooManyRedirects
		}
		return nil
	}

	return &Resolver{client: &followClient, timeout: timeout, logger: logger}
}

// Resolve returns the playable URL for raw and whether resolution succeeded.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if IsDirect(raw) {
		return raw, true
	}

	final, err := r.follow(ctx, http.MethodHead, raw)
	if err != nil {
		r.logger.DebugContext(ctx, "resolve_head_failed", slog.String("url", raw), slog.Any("error", err))
		final, err = r.follow(ctx, http.MethodGet, raw)
	}
	if err != nil {
		r.logger.DebugContext(ctx, "resolve_failed", slog.String("url", raw), slog.Any("error", err))
		return "", false
	}

	return final, true
}

// follow issues one request and returns the final URL after redirects.
// Each call gets its own timeout, so a hung HEAD leaves GET a full budget.
func (r *Resolver) follow(ctx context.Context, method, raw string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, method, raw, nil)
	if err != nil {
		return "", fmt.Errorf("resolve: build request: %w", err)
	}
	request.Header.Set("User-Agent", constants.DesktopUserAgent)
	request.Header.Set("Accept", "*/*")

	response, err := r.client.Do(request)
	if err != nil {
		return "", err
	}
	// Only the status and final URL matter; the body may be a whole video.
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("resolve: %s returned status %d", method, response.StatusCode)
	}

	return response.Request.URL.String(), nil
}
