package handler

import (
	"mime"
	"net/http"

	"clinic-records/internal/middleware"
	"clinic-records/internal/model"
	"clinic-records/internal/service"
	"clinic-records/internal/validation"
	"clinic-records/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login accepts a JSON body or an OAuth2-style password form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := readLoginRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := validation.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	tokens, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tokens, nil)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	writeSuccess(w, http.StatusOK, principal, nil)
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (model.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return model.LoginRequest{}, apierror.BadRequest("invalid form body", "")
		}
		return loginFromForm(r), nil
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return model.LoginRequest{}, apierror.BadRequest("invalid form body", "")
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		return loginFromForm(r), nil
	}

	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		return model.LoginRequest{}, err
	}
	return payload, nil
}

func loginFromForm(r *http.Request) model.LoginRequest {
	return model.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
}
