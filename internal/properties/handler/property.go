package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"realty/internal/properties/service"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	httputil "realty/pkg/http"
	"realty/pkg/logger"
	"realty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const maxUploadMemory = 32 << 20

type PropertyHandler struct {
	service service.PropertyService
	log     *logger.Logger
}

func NewPropertyHandler(service service.PropertyService, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		log:     log,
	}
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := ParseFilter(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	limit, offset, err := httputil.ExtractPagination(r, config.DefaultPropertyPageSize)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	properties, count, err := h.service.Search(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WritePaginated(w, properties, count, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "operation", "WritePaginated", "error", err)
	}
}

func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	property, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		h.writeBadBody(w, "Create")
		return
	}

	if err := h.service.Create(r.Context(), &property); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, property); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeBadBody(w, "Update")
		return
	}

	property, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

// UploadImages accepts a multipart form with one or more "images" parts.
func (h *PropertyHandler) UploadImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.writeError(w, "UploadImages", apperrors.InvalidInput("Expected multipart form data"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	property, err := h.service.UploadImages(r.Context(), ps.ByName("id"), r.MultipartForm.File["images"])
	if err != nil {
		h.writeError(w, "UploadImages", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadImages", "operation", "WriteSuccess", "error", err)
	}
}

// ParseFilter reads the search query parameters. sizes is a comma separated
// list of bedroom counts where a trailing "+" means "or more", e.g. "1,2,5+".
func ParseFilter(r *http.Request) (model.PropertyFilter, error) {
	query := r.URL.Query()
	filter := model.PropertyFilter{
		Query:  query.Get("q"),
		Status: model.PropertyStatus(strings.TrimSpace(query.Get("status"))),
	}

	bounds := []struct {
		name string
		dst  **int64
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
		{"min_area", &filter.MinArea},
		{"max_area", &filter.MaxArea},
	}
	for _, b := range bounds {
		v, err := httputil.OptionalInt64(r, b.name)
		if err != nil {
			return filter, err
		}
		*b.dst = v
	}

	sizes, atLeast, err := ParseSizes(query.Get("sizes"))
	if err != nil {
		return filter, err
	}
	filter.Sizes = sizes
	filter.SizeAtLeast = atLeast
	return filter, nil
}

func ParseSizes(raw string) ([]int, *int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, nil
	}

	var sizes []int
	var atLeast *int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		open := strings.HasSuffix(part, "+")
		n, err := strconv.Atoi(strings.TrimSuffix(part, "+"))
		if err != nil || n < 1 {
			return nil, nil, apperrors.InvalidInput("invalid sizes parameter: " + raw)
		}

		if open {
			if atLeast == nil || n < *atLeast {
				atLeast = &n
			}
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes, atLeast, nil
}

func (h *PropertyHandler) writeBadBody(w http.ResponseWriter, name string) {
	if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
		Code:  apperrors.CodeBadRequest,
	}); writeErr != nil {
		h.log.Error("failed to write JSON response", "handler", name, "operation", "WriteJSON", "error", writeErr)
	}
}

func (h *PropertyHandler) writeError(w http.ResponseWriter, name string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/properties", h.Search)
	router.POST("/api/v1/properties", h.Create)
	router.GET("/api/v1/properties/id/:id", h.GetByID)
	router.PATCH("/api/v1/properties/id/:id", h.Update)
	router.DELETE("/api/v1/properties/id/:id", h.Delete)
	router.POST("/api/v1/properties/id/:id/images", h.UploadImages)
}
