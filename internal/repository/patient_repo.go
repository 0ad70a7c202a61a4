package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-records/internal/model"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) FindByID(ctx context.Context, id string) (model.Patient, error) {
	var p model.Patient
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, age, created_at FROM patients WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Age, &p.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Patient{}, model.ErrPatientNotFound
	}
	if err != nil {
		return model.Patient{}, fmt.Errorf("find patient: %w", err)
	}
	return p, nil
}

func (r *PatientRepository) List(ctx context.Context, query model.PageQuery) ([]model.Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, age, created_at FROM patients
		 ORDER BY created_at, id
		 LIMIT $1 OFFSET $2`, query.Limit, query.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	patients := make([]model.Patient, 0)
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *PatientRepository) Create(ctx context.Context, p model.Patient) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO patients (id, name, age, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.Age, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// Delete removes the patient and, through the foreign key, its notes.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPatientNotFound
	}
	return nil
}
