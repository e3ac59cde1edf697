// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Generation: Episode caps and the archive naming convention.
  - Headers: Request tracing and generation count headers.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "vodstrm"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout must cover a full archive build: up to MaxEpisodes
	// sequential resolutions.
	DefaultWriteTimeout = 5 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 5 * time.Minute

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Generation

const (
	// MaxEpisodes caps how many episodes one archive build processes.
	MaxEpisodes = 50

	// MaxResolveRedirects is how many redirects the resolver follows.
	MaxResolveRedirects = 3

	// MaxBatchItems caps one batch generation request.
	MaxBatchItems = 20

	// BatchPauseThreshold is the batch size above which items are spaced out.
	BatchPauseThreshold = 5

	// BatchPauseMin and BatchPauseMax bound the random pause between items.
	BatchPauseMin = 1500 * time.Millisecond
	BatchPauseMax = 4 * time.Second

	// ArchiveSuffix is appended to the sanitized title to name the download.
	ArchiveSuffix = "_Emby_STRM.zip"

	// DefaultEpisodeLabel is used when an episode entry carries no label.
	DefaultEpisodeLabel = "正片"

	// DesktopUserAgent is sent by the resolver and the upstream client.
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderSuccessCount   = "X-Strm-Success-Count"
	HeaderSkippedCount   = "X-Strm-Skipped-Count"
	HeaderRecordID       = "X-Strm-Record-ID"
	HeaderContentDisp    = "Content-Disposition"
	ContentTypeOctetBlob = "application/octet-stream"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixRecord = "strm:record:"
	RedisKeyRecordIdx = "strm:records"
)
