package handler

import (
	"encoding/json"
	"net/http"

	"realty/internal/promotions/service"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	httputil "realty/pkg/http"
	"realty/pkg/logger"
	"realty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PromotionHandler struct {
	service service.PromotionService
	log     *logger.Logger
}

func NewPromotionHandler(service service.PromotionService, log *logger.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log,
	}
}

func (h *PromotionHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractPagination(r, config.DefaultPaginationLimit)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	promotions, count, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, promotions, count, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *PromotionHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	promotion, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, promotion); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var promotion model.Promotion
	if err := json.NewDecoder(r.Body).Decode(&promotion); err != nil {
		h.writeError(w, "Create", apperrors.New(apperrors.CodeBadRequest, "Invalid request body", http.StatusBadRequest))
		return
	}

	if err := h.service.Create(r.Context(), &promotion); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, promotion); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PromotionUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, "Update", apperrors.New(apperrors.CodeBadRequest, "Invalid request body", http.StatusBadRequest))
		return
	}

	promotion, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, promotion); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *PromotionHandler) writeError(w http.ResponseWriter, name string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PromotionHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/promotions", h.GetAll)
	router.POST("/api/v1/promotions", h.Create)
	router.GET("/api/v1/promotions/id/:id", h.GetByID)
	router.PATCH("/api/v1/promotions/id/:id", h.Update)
	router.DELETE("/api/v1/promotions/id/:id", h.Delete)
}
