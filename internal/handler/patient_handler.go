package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clinic-records/internal/middleware"
	"clinic-records/internal/model"
	"clinic-records/internal/service"
	"clinic-records/internal/validation"
)

type PatientHandler struct {
	service *service.PatientService
}

func NewPatientHandler(service *service.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := model.PageQuery{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}

	patients, meta, err := h.service.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.PatientList{Patients: patients}, meta)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.Get(r.Context(), chi.URLParam(r, "patient_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, patient, nil)
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreatePatientRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := validation.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	patient, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, patient, nil)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patient_id")
	if err := h.service.Delete(r.Context(), patientID); err != nil {
		writeError(w, err)
		return
	}

	actor, _ := middleware.PrincipalFromContext(r.Context())
	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true, "patient_id": patientID, "deleted_by": actor.Identifier}, nil)
}

func (h *PatientHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.ListNotes(r.Context(), chi.URLParam(r, "patient_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.NoteList{Notes: notes}, nil)
}

func (h *PatientHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateNoteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := validation.Struct(payload); err != nil {
		writeError(w, err)
		return
	}

	author, _ := middleware.PrincipalFromContext(r.Context())
	note, err := h.service.AddNote(r.Context(), chi.URLParam(r, "patient_id"), author, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, note, nil)
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
