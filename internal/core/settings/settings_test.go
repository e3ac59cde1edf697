// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vodstrm/internal/core/settings"
	"github.com/taibuivan/vodstrm/internal/platform/apperr"
)

func ptr(s string) *string { return &s }

/*
TestStore_Apply covers accepted and rejected endpoint updates.
*/
func TestStore_Apply(t *testing.T) {
	tests := []struct {
		name    string
		update  settings.Update
		want    string
		wantErr bool
	}{
		{"no_change", settings.Update{}, "https://a.example/api", false},
		{"valid", settings.Update{VodAPI: ptr(" https://b.example/api.php ")}, "https://b.example/api.php", false},
		{"relative", settings.Update{VodAPI: ptr("/api.php")}, "https://a.example/api", true},
		{"ftp", settings.Update{VodAPI: ptr("ftp://b.example")}, "https://a.example/api", true},
		{"blank", settings.Update{VodAPI: ptr("  ")}, "https://a.example/api", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := settings.NewStore("https://a.example/api")

			_, err := store.Apply(context.Background(), tt.update)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, store.VodAPI())
		})
	}
}

/*
TestStore_Sources covers the aggregated search list and its fallback.
*/
func TestStore_Sources(t *testing.T) {
	sources := func(values ...string) *[]string { return &values }

	tests := []struct {
		name    string
		seed    []string
		update  settings.Update
		want    []string
		wantErr bool
	}{
		{"fallback_to_vod_api", nil, settings.Update{}, []string{"https://a.example/api"}, false},
		{"seeded", []string{" https://b.example/api ", "", "https://b.example/api"}, settings.Update{}, []string{"https://b.example/api"}, false},
		{"replaced", nil, settings.Update{Sources: sources("https://b.example/api", "https://c.example/api")}, []string{"https://b.example/api", "https://c.example/api"}, false},
		{"cleared", []string{"https://b.example/api"}, settings.Update{Sources: sources()}, []string{"https://a.example/api"}, false},
		{"invalid_entry", []string{"https://b.example/api"}, settings.Update{Sources: sources("https://c.example/api", "nope")}, []string{"https://b.example/api"}, true},
		{"invalid_vod_api_blocks_sources", nil, settings.Update{VodAPI: ptr("nope"), Sources: sources("https://c.example/api")}, []string{"https://a.example/api"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := settings.NewStore("https://a.example/api", tt.seed...)

			_, err := store.Apply(context.Background(), tt.update)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, store.Sources())
		})
	}
}

/*
TestStore_ConcurrentAccess exercises readers and writers together.
*/
func TestStore_ConcurrentAccess(t *testing.T) {
	store := settings.NewStore("https://a.example/api")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Apply(context.Background(), settings.Update{VodAPI: ptr("https://b.example/api")})
		}()
		go func() {
			defer wg.Done()
			_ = store.VodAPI()
		}()
	}
	wg.Wait()

	assert.Equal(t, "https://b.example/api", store.VodAPI())
}

/*
TestHandler_RoundTrip posts a new endpoint and reads it back.
*/
func TestHandler_RoundTrip(t *testing.T) {
	router := settings.NewHandler(settings.NewStore("https://a.example/api")).Routes()

	post := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"vodApi":"https://c.example/json/","sources":["https://c.example/json/","https://d.example/json/"]}`,
	))
	postRecorder := httptest.NewRecorder()
	router.ServeHTTP(postRecorder, post)
	require.Equal(t, http.StatusOK, postRecorder.Code)

	getRecorder := httptest.NewRecorder()
	router.ServeHTTP(getRecorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, getRecorder.Code)

	var body struct {
		Data settings.Settings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &body))
	assert.Equal(t, "https://c.example/json/", body.Data.VodAPI)
	assert.Equal(t, []string{"https://c.example/json/", "https://d.example/json/"}, body.Data.Sources)
}

/*
TestHandler_RejectsInvalid returns 400 for bad bodies.
*/
func TestHandler_RejectsInvalid(t *testing.T) {
	router := settings.NewHandler(settings.NewStore("https://a.example/api")).Routes()

	for _, body := range []string{`{"vodApi":"nope"}`, `{"sources":["nope"]}`, `{not json`} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
	}
}
