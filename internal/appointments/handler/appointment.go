package handler

import (
	"encoding/json"
	"net/http"

	"realty/internal/appointments/service"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	httputil "realty/pkg/http"
	"realty/pkg/logger"
	"realty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AppointmentHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log,
	}
}

// Availability answers GET /availability?property_id=&date=.
func (h *AppointmentHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		h.writeError(w, "Availability", apperrors.InvalidInput("date query parameter is required"))
		return
	}

	availability, err := h.service.Availability(r.Context(), query.Get("property_id"), date)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
			Code:  apperrors.CodeBadRequest,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	appointment, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, appointment); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	appointment, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, appointment); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *AppointmentHandler) History(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "History", service.ScopeAll)
}

func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "Upcoming", service.ScopeUpcoming)
}

func (h *AppointmentHandler) Past(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "Past", service.ScopePast)
}

func (h *AppointmentHandler) Overview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.writeError(w, "Overview", err)
		return
	}

	if err := httputil.WriteSuccess(w, overview); err != nil {
		h.log.Error("failed to write success response", "handler", "Overview", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request, name string, scope service.Scope) {
	limit, offset, err := httputil.ExtractPagination(r, config.DefaultAppointmentPageSize)
	if err != nil {
		h.writeError(w, name, err)
		return
	}

	appointments, count, err := h.service.List(r.Context(), scope, limit, offset)
	if err != nil {
		h.writeError(w, name, err)
		return
	}

	if err := httputil.WritePaginated(w, appointments, count, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", name, "operation", "WritePaginated", "error", err)
	}
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, name string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/appointments/availability", h.Availability)
	router.POST("/api/v1/appointments", h.Book)
	router.GET("/api/v1/appointments", h.History)
	router.GET("/api/v1/appointments/upcoming", h.Upcoming)
	router.GET("/api/v1/appointments/past", h.Past)
	router.GET("/api/v1/appointments/overview", h.Overview)
	router.GET("/api/v1/appointments/id/:id", h.GetByID)
	router.DELETE("/api/v1/appointments/id/:id", h.Cancel)
}
