// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vodstrm/internal/platform/request"
	"github.com/taibuivan/vodstrm/internal/platform/respond"
)

// Handler exposes the settings store over HTTP.
type Handler struct {
	store *Store
}

// NewHandler constructs a new settings [Handler].
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Routes returns the router mounted at /api/config.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.getSettings)
	router.Post("/", handler.updateSettings)
	return router
}

/*
GET /api/config.

Response:
  - 200: {"data": {"vodApi": "...", "sources": [...]}}
*/
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.store.Get())
}

/*
POST /api/config.

Request Body:
  - vodApi: string (optional, absolute http(s) URL)
  - sources: []string (optional, absolute http(s) URLs; [] falls back to vodApi)

Response:
  - 200: the settings now in effect
  - 400: invalid JSON or URL
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	var update Update
	if err := requestutil.DecodeOptionalJSON(request, &update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.store.Apply(request.Context(), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, current)
}
