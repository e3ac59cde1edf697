// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/api"
	"github.com/taibuivan/vodstrm/internal/core/archive"
	"github.com/taibuivan/vodstrm/internal/core/generate"
	"github.com/taibuivan/vodstrm/internal/core/record"
	"github.com/taibuivan/vodstrm/internal/core/settings"
	"github.com/taibuivan/vodstrm/internal/core/vod"
	"github.com/taibuivan/vodstrm/internal/platform/config"
)

type passResolver struct{}

func (passResolver) Resolve(_ context.Context, raw string) (string, bool) { return raw, true }

func newTestRouter(t *testing.T, checkStore func(context.Context) error) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"list":[],"class":[]}`))
	}))
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "0", Environment: "test"}

	store := settings.NewStore(upstream.URL)
	client := vod.NewClient(store, time.Second)
	records := record.NewService(record.NewMemoryRepository())
	generator := generate.NewService(archive.NewAssembler(passResolver{}), records, client)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		StoreName:  "memory",
		CheckStore: checkStore,
	}, logger)

	return api.NewRouter(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Settings:  settings.NewHandler(store),
		Vod:       vod.NewHandler(client),
		Generate:  generate.NewHandler(generator),
		Record:    record.NewHandler(records),
	})
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
	return recorder
}

/*
TestRouter_Routes checks that every endpoint is mounted where clients expect.
*/
func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/api/config", "", http.StatusOK},
		{http.MethodPost, "/api/config", `{"vodApi":"nope"}`, http.StatusBadRequest},
		{http.MethodGet, "/api/proxy/vod?wd=x", "", http.StatusOK},
		{http.MethodGet, "/api/vod/categories", "", http.StatusOK},
		{http.MethodGet, "/api/vod/detail", "", http.StatusBadRequest},
		{http.MethodGet, "/api/vod/search?wd=x", "", http.StatusOK},
		{http.MethodGet, "/api/vod/search", "", http.StatusBadRequest},
		{http.MethodPost, "/api/generate/batch", `{"items":[{"vodName":"Film","type":"movie","episodes":[{"name":"HD","url":"http://a/b.mp4"}]}]}`, http.StatusOK},
		{http.MethodGet, "/api/records/unknown/archive", "", http.StatusNotFound},
		{http.MethodGet, "/api/records", "", http.StatusOK},
		{http.MethodGet, "/api/records/unknown", "", http.StatusNotFound},
		{http.MethodPost, "/api/generate-zip", `{"vodName":"Film","type":"movie","episodes":[{"name":"HD","url":"http://a/b.mp4"}]}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			recorder := do(router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

/*
TestRouter_ReadinessDegraded answers 503 when the store is down.
*/
func TestRouter_ReadinessDegraded(t *testing.T) {
	router := newTestRouter(t, func(context.Context) error { return errors.New("connection refused") })

	recorder := do(router, http.MethodGet, "/ready", "")

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)
}

/*
TestRouter_CORSPreflight answers OPTIONS with the exposed count headers.
*/
func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	request := httptest.NewRequest(http.MethodOptions, "/api/generate-zip", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Expose-Headers"), "X-Strm-Success-Count")
}
