// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vodstrm/internal/platform/request"
	"github.com/taibuivan/vodstrm/internal/platform/respond"
)

// Handler exposes generation history.
type Handler struct {
	service *Service
}

// NewHandler constructs a new record [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the record endpoints to a router mounted at
// /api/records. Rebuild endpoints are registered by the generate package.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listRecords)
	router.Get("/{id}", handler.getRecord)
	router.Delete("/{id}", handler.deleteRecord)
}

/*
GET /api/records.

Response:
  - 200: {"data": [Record...]} newest first
*/
func (handler *Handler) listRecords(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

func (handler *Handler) getRecord(writer http.ResponseWriter, request *http.Request) {
	record, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) deleteRecord(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
