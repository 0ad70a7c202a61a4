package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-records/internal/model"
)

type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

func (r *NoteRepository) Create(ctx context.Context, n model.Note) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notes (id, patient_id, author, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.PatientID, n.Author, n.Content, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByPatient(ctx context.Context, patientID string) ([]model.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, patient_id, author, content, created_at
		 FROM notes WHERE patient_id = $1
		 ORDER BY created_at, id`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.PatientID, &n.Author, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
