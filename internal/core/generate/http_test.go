// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package generate_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/core/generate"
	"github.com/taibuivan/vodstrm/internal/core/vod"
)

func newRouter(searcher generate.Searcher) chi.Router {
	service, _ := newService(searcher)
	handler := generate.NewHandler(service)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	router.Route("/records", handler.RegisterRecordRoutes)
	return router
}

func post(router http.Handler, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return recorder
}

/*
TestHandler_GenerateZip returns the archive with count headers.
*/
func TestHandler_GenerateZip(t *testing.T) {
	router := newRouter(&fakeSearcher{})

	payload, err := json.Marshal(seriesRequest())
	require.NoError(t, err)

	recorder := post(router, "/generate-zip", string(payload))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/octet-stream", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Show_Emby_STRM.zip", recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", recorder.Header().Get("X-Strm-Success-Count"))
	assert.Equal(t, "0", recorder.Header().Get("X-Strm-Skipped-Count"))
	assert.NotEmpty(t, recorder.Header().Get("X-Strm-Record-ID"))

	data := recorder.Body.Bytes()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, reader.File, 2)
}

/*
TestHandler_GenerateZipErrors covers the JSON error responses.
*/
func TestHandler_GenerateZipErrors(t *testing.T) {
	router := newRouter(&fakeSearcher{})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"invalid_json", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_name", `{"type":"series"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"movie_no_address", `{"vodName":"Film","type":"movie","episodes":[]}`, http.StatusInternalServerError, "GENERATION_FAILED"},
		{
			"series_all_failed",
			`{"vodName":"Show","type":"series","episodes":[{"name":"第1集","url":""}]}`,
			http.StatusInternalServerError, "GENERATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := post(router, "/generate-zip", tt.body)

			require.Equal(t, tt.status, recorder.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

/*
TestHandler_SmartSwitch rebuilds a record over HTTP.
*/
func TestHandler_SmartSwitch(t *testing.T) {
	router := newRouter(&fakeSearcher{items: []vod.Item{itemWithSources()}})

	payload, err := json.Marshal(seriesRequest())
	require.NoError(t, err)
	created := post(router, "/generate-zip", string(payload))
	require.Equal(t, http.StatusOK, created.Code)
	id := created.Header().Get("X-Strm-Record-ID")

	switched := post(router, "/records/"+id+"/switch", "")

	require.Equal(t, http.StatusOK, switched.Code)
	assert.Equal(t, id, switched.Header().Get("X-Strm-Record-ID"))
	assert.Equal(t, "2", switched.Header().Get("X-Strm-Success-Count"))

	missing := post(router, "/records/0190f5e2-0000-7000-8000-000000000000/switch", `{}`)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

/*
TestHandler_GenerateBatch returns per-item outcomes and serves each stored archive.
*/
func TestHandler_GenerateBatch(t *testing.T) {
	router := newRouter(&fakeSearcher{})

	movie := generate.Request{VodName: "Film", Type: "movie"}
	payload, err := json.Marshal(generate.BatchRequest{Items: []generate.Request{seriesRequest(), movie}})
	require.NoError(t, err)

	recorder := post(router, "/generate/batch", string(payload))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data generate.BatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Succeeded)
	assert.Equal(t, 1, body.Data.Failed)
	require.Len(t, body.Data.Items, 2)
	assert.Equal(t, "GENERATION_FAILED", body.Data.Items[1].Code)

	download := httptest.NewRecorder()
	router.ServeHTTP(download, httptest.NewRequest(http.MethodGet, "/records/"+body.Data.Items[0].RecordID+"/archive", nil))
	require.Equal(t, http.StatusOK, download.Code)
	assert.Equal(t, "attachment; filename=Show_Emby_STRM.zip", download.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", download.Header().Get("X-Strm-Success-Count"))

	assert.Equal(t, http.StatusBadRequest, post(router, "/generate/batch", `{"items":[]}`).Code)
}
