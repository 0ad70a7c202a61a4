package service

import (
	"context"
	"sort"
	"sync"

	"clinic-records/internal/model"
)

type memoryPatients struct {
	mu       sync.Mutex
	patients map[string]model.Patient
	notes    map[string][]model.Note
}

func newMemoryPatients() *memoryPatients {
	return &memoryPatients{patients: map[string]model.Patient{}, notes: map[string][]model.Note{}}
}

func (m *memoryPatients) FindByID(_ context.Context, id string) (model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.patients[id]
	if !ok {
		return model.Patient{}, model.ErrPatientNotFound
	}
	return p, nil
}

func (m *memoryPatients) List(_ context.Context, query model.PageQuery) ([]model.Patient, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]model.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	start := min(query.Offset(), len(all))
	end := min(start+query.Limit, len(all))
	return all[start:end], len(all), nil
}

func (m *memoryPatients) Create(_ context.Context, p model.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = p
	return nil
}

func (m *memoryPatients) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[id]; !ok {
		return model.ErrPatientNotFound
	}
	delete(m.patients, id)
	delete(m.notes, id)
	return nil
}

type memoryNotes struct{ store *memoryPatients }

func (n memoryNotes) Create(_ context.Context, note model.Note) error {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	n.store.notes[note.PatientID] = append(n.store.notes[note.PatientID], note)
	return nil
}

func (n memoryNotes) ListByPatient(_ context.Context, patientID string) ([]model.Note, error) {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	return append([]model.Note{}, n.store.notes[patientID]...), nil
}
