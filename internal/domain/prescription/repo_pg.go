package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the PostgreSQL-backed Repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, owner_id, medication_name, doctor_name, patient_name, date,
	dosage, instructions, side_effects, created_at, updated_at`

func scan(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.OwnerID, &p.MedicationName, &p.DoctorName, &p.PatientName,
		&p.Date, &p.Dosage, &p.Instructions, &p.SideEffects, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prescription (id, owner_id, medication_name, doctor_name, patient_name,
			date, dosage, instructions, side_effects, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.OwnerID, p.MedicationName, p.DoctorName, p.PatientName,
		p.Date, p.Dosage, p.Instructions, p.SideEffects, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *repoPG) GetByOwner(ctx context.Context, id uuid.UUID, owner string) (*Prescription, error) {
	return scan(r.pool.QueryRow(ctx,
		`SELECT `+cols+` FROM prescription WHERE id = $1 AND owner_id = $2`, id, owner))
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE prescription SET medication_name=$3, doctor_name=$4, patient_name=$5,
			date=$6, dosage=$7, instructions=$8, side_effects=$9, updated_at=$10
		WHERE id = $1 AND owner_id = $2`,
		p.ID, p.OwnerID, p.MedicationName, p.DoctorName, p.PatientName,
		p.Date, p.Dosage, p.Instructions, p.SideEffects, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteByOwner(ctx context.Context, id uuid.UUID, owner string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM prescription WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByOwner(ctx context.Context, owner string) ([]*Prescription, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM prescription WHERE owner_id = $1 ORDER BY date DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Prescription
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
