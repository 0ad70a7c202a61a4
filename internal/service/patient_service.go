package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinic-records/internal/model"
	"clinic-records/pkg/apierror"
)

type PatientStore interface {
	FindByID(ctx context.Context, id string) (model.Patient, error)
	List(ctx context.Context, query model.PageQuery) ([]model.Patient, int, error)
	Create(ctx context.Context, patient model.Patient) error
	Delete(ctx context.Context, id string) error
}

type NoteStore interface {
	Create(ctx context.Context, note model.Note) error
	ListByPatient(ctx context.Context, patientID string) ([]model.Note, error)
}

type PatientService struct {
	patients PatientStore
	notes    NoteStore
	now      func() time.Time
}

func NewPatientService(patients PatientStore, notes NoteStore) *PatientService {
	return &PatientService{patients: patients, notes: notes, now: time.Now}
}

func (s *PatientService) List(ctx context.Context, query model.PageQuery) ([]model.Patient, *model.Meta, error) {
	query = query.Normalize()

	patients, total, err := s.patients.List(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	return patients, model.NewMeta(query, total), nil
}

func (s *PatientService) Get(ctx context.Context, id string) (model.Patient, error) {
	if err := validateID(id); err != nil {
		return model.Patient{}, err
	}
	return s.patients.FindByID(ctx, id)
}

func (s *PatientService) Create(ctx context.Context, req model.CreatePatientRequest) (model.Patient, error) {
	patient := model.Patient{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Age:       req.Age,
		CreatedAt: s.now().UTC(),
	}
	if patient.Name == "" {
		return model.Patient{}, apierror.BadRequest("name is required", "name")
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		return model.Patient{}, err
	}
	return patient, nil
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

func (s *PatientService) AddNote(ctx context.Context, patientID string, author model.Principal, req model.CreateNoteRequest) (model.Note, error) {
	if _, err := s.Get(ctx, patientID); err != nil {
		return model.Note{}, err
	}

	note := model.Note{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Author:    author.Identifier,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: s.now().UTC(),
	}
	if note.Content == "" {
		return model.Note{}, apierror.BadRequest("content is required", "content")
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return model.Note{}, fmt.Errorf("add note: %w", err)
	}
	return note, nil
}

func (s *PatientService) ListNotes(ctx context.Context, patientID string) ([]model.Note, error) {
	if _, err := s.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.notes.ListByPatient(ctx, patientID)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apierror.BadRequest("invalid patient id", id)
	}
	return nil
}
