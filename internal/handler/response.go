package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"clinic-records/internal/auth"
	"clinic-records/internal/model"
	"clinic-records/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	var authErr *auth.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.As(err, &authErr) && auth.IsForbidden(err):
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = authErr.Reason
	case errors.As(err, &authErr) && auth.IsUnauthenticated(err):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = authErr.Reason
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "User already exists"
	case errors.Is(err, model.ErrCannotDeleteSelf):
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "Cannot delete own account"
	case errors.Is(err, model.ErrPatientNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Patient not found"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return apierror.BadRequest("invalid JSON body", "")
	}
	return nil
}
