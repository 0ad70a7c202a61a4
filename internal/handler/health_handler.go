package handler

import (
	"context"
	"net/http"
	"time"

	"clinic-records/pkg/apierror"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db healthChecker
}

func NewHealthHandler(db healthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil {
		writeSuccess(w, http.StatusOK, map[string]string{"database": "unconfigured"}, nil)
		return
	}

	if err := h.db.Health(ctx); err != nil {
		writeError(w, apierror.New("UNAVAILABLE", "database unreachable", "", http.StatusServiceUnavailable))
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"database": "ok"}, nil)
}
