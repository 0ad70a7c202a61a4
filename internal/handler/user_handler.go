package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-records/internal/middleware"
	"clinic-records/internal/model"
	"clinic-records/internal/service"
	"clinic-records/internal/validation"
	"clinic-records/pkg/apierror"
)

type UserHandler struct {
	service *service.AccountService
}

func NewUserHandler(service *service.AccountService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.AuthUserList{Users: users}, nil)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := validation.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, apierror.BadRequest("username is required", "username"))
		return
	}

	actor, _ := middleware.PrincipalFromContext(r.Context())
	if err := h.service.DeleteUser(r.Context(), username, actor); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
