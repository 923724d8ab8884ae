package handler

import (
	"encoding/json"
	"net/http"

	"realty/internal/users/service"
	apperrors "realty/pkg/errors"
	httputil "realty/pkg/http"
	"realty/pkg/logger"
	"realty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignupRequest
	if !h.decode(w, r, "Signup", &req) {
		return
	}

	user, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Signup", err)
		return
	}

	if err := httputil.WriteCreated(w, user); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if !h.decode(w, r, "Login", &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.service.Me(r.Context())
	if err != nil {
		h.writeError(w, "Me", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Agents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	agents, err := h.service.Agents(r.Context())
	if err != nil {
		h.writeError(w, "Agents", err)
		return
	}

	if err := httputil.WriteSuccess(w, agents); err != nil {
		h.log.Error("failed to write success response", "handler", "Agents", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.RoleUpdate
	if !h.decode(w, r, "UpdateRole", &req) {
		return
	}

	user, err := h.service.UpdateRole(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "UpdateRole", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateRole", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) decode(w http.ResponseWriter, r *http.Request, name string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, name, apperrors.New(apperrors.CodeBadRequest, "Invalid request body", http.StatusBadRequest))
		return false
	}
	return true
}

func (h *UserHandler) writeError(w http.ResponseWriter, name string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/signup", h.Signup)
	router.POST("/api/v1/auth/login", h.Login)
	router.GET("/api/v1/users/me", h.Me)
	router.GET("/api/v1/agents", h.Agents)
	router.PATCH("/api/v1/users/id/:id/role", h.UpdateRole)
}
