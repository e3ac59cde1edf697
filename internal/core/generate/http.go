// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package generate

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vodstrm/internal/platform/constants"
	requestutil "github.com/taibuivan/vodstrm/internal/platform/request"
	"github.com/taibuivan/vodstrm/internal/platform/respond"
)

// Handler exposes archive generation.
type Handler struct {
	service *Service
}

// NewHandler constructs a new generate [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the generation endpoints to a router mounted at /api.
//
//   - POST /generate-zip     one archive
//   - POST /generate/batch   many records, JSON summary
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/generate-zip", handler.generateZip)
	router.Post("/generate/batch", handler.generateBatch)
}

// RegisterRecordRoutes attaches the archive endpoints to the /api/records router.
func (handler *Handler) RegisterRecordRoutes(router chi.Router) {
	router.Get("/{id}/archive", handler.downloadArchive)
	router.Post("/{id}/switch", handler.smartSwitch)
}

/*
POST /api/generate-zip.

Request Body:
  - vodName: string (required)
  - vodYear: string
  - type: "movie" selects the movie layout; anything else ("tv", "series") is a series
  - sourceName: string
  - episodes: [{name, url}]

Response:
  - 200: ZIP attachment with X-Strm-Success-Count, X-Strm-Skipped-Count, X-Strm-Record-ID
  - 400: invalid body
  - 500: GENERATION_FAILED
*/
func (handler *Handler) generateZip(writer http.ResponseWriter, request *http.Request) {
	var input Request
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	output, err := handler.service.Generate(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeArchive(writer, output)
}

/*
POST /api/generate/batch.

Request Body:
  - items: [generate-zip body...] (1 to 20)

Response:
  - 200: {"data": {"items": [...], "succeeded": n, "failed": n}}
  - 400: invalid body, empty or oversized batch
*/
func (handler *Handler) generateBatch(writer http.ResponseWriter, request *http.Request) {
	var input BatchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GenerateBatch(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// downloadArchive handles GET /api/records/{id}/archive.
func (handler *Handler) downloadArchive(writer http.ResponseWriter, request *http.Request) {
	output, err := handler.service.Archive(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeArchive(writer, output)
}

/*
POST /api/records/{id}/switch.

Request Body (optional):
  - keyword, vodId, sourceIndex, sourceName

Response:
  - 200: ZIP attachment of the rebuilt record
  - 404: unknown record, no search result, or no play source
  - 502: aggregator unreachable
*/
func (handler *Handler) smartSwitch(writer http.ResponseWriter, request *http.Request) {
	var input SwitchRequest
	if err := requestutil.DecodeOptionalJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	output, err := handler.service.SmartSwitch(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeArchive(writer, output)
}

func writeArchive(writer http.ResponseWriter, output *Output) {
	header := writer.Header()
	header.Set(constants.HeaderSuccessCount, strconv.Itoa(output.Result.SuccessCount))
	header.Set(constants.HeaderSkippedCount, strconv.Itoa(output.Result.SkippedCount))
	header.Set(constants.HeaderRecordID, output.Record.ID)

	respond.Attachment(writer, output.Result.DownloadName, output.Result.Archive)
}
