// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vod

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vodstrm/internal/platform/request"
	"github.com/taibuivan/vodstrm/internal/platform/respond"
	"github.com/taibuivan/vodstrm/internal/platform/validate"
	"github.com/taibuivan/vodstrm/pkg/slice"
)

// Handler exposes the aggregator passthrough and the image proxy.
type Handler struct {
	client *Client
}

// NewHandler constructs a new vod [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes returns a standalone router with the upstream endpoints.
//
//   - GET /proxy/vod        verbatim aggregator JSON
//   - GET /proxy/img        poster bytes
//   - GET /vod/categories   category list
//   - GET /vod/search       search across every configured source
//   - GET /vod/detail       items with decoded play sources
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches the endpoints listed on [Handler.Routes] to router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/proxy/vod", handler.proxyVod)
	router.Get("/proxy/img", handler.proxyImage)
	router.Get("/vod/categories", handler.listCategories)
	router.Get("/vod/search", handler.search)
	router.Get("/vod/detail", handler.getDetail)
}

/*
GET /api/proxy/vod?ac&pg&t&wd&ids.

Response:
  - 200: upstream body, unchanged
  - 502: aggregator unreachable or returned garbage
*/
func (handler *Handler) proxyVod(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	body, err := handler.client.Proxy(request.Context(), Query{
		Action:  query.Get("ac"),
		Keyword: query.Get("wd"),
		Page:    requestutil.QueryInt(request, "pg", 1),
		Type:    query.Get("t"),
		IDs:     query.Get("ids"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Raw(writer, body)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.client.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
GET /api/vod/search?wd=keyword.

The keyword may also be sent as "keyword". Every item carries the
_source_index of the source it was found on.

Response:
  - 200: {"data": [Item...]}
  - 400: keyword missing
  - 502: every source failed
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	keyword := strings.TrimSpace(query.Get("wd"))
	if keyword == "" {
		keyword = strings.TrimSpace(query.Get("keyword"))
	}
	if keyword == "" {
		respond.Error(writer, request, validate.RequiredError("wd", "This field is required"))
		return
	}

	items, err := handler.client.SearchAll(request.Context(), keyword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
GET /api/vod/detail?ids=1,2[&source=N].

Without source the current vodApi is used; with it, the N-th search source.

Response:
  - 200: {"data": [Detail...]}
  - 400: ids missing or unknown source
*/
func (handler *Handler) getDetail(writer http.ResponseWriter, request *http.Request) {
	ids := strings.TrimSpace(request.URL.Query().Get("ids"))
	if ids == "" {
		respond.Error(writer, request, validate.RequiredError("ids", "This field is required"))
		return
	}

	var (
		items []Item
		err   error
	)
	if request.URL.Query().Has("source") {
		items, err = handler.client.DetailFrom(request.Context(), requestutil.QueryInt(request, "source", -1), ids)
	} else {
		items, err = handler.client.Detail(request.Context(), ids)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(items, Item.ToDetail))
}

func (handler *Handler) proxyImage(writer http.ResponseWriter, request *http.Request) {
	image, err := handler.client.Image(request.Context(), request.URL.Query().Get("url"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	header := writer.Header()
	header.Set("Content-Type", image.ContentType)
	header.Set("Content-Length", strconv.Itoa(len(image.Body)))
	header.Set("Cache-Control", "public, max-age=86400")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(image.Body)
}
