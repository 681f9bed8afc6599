package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the PostgreSQL-backed Repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, owner_id, medication, dosage, time, date, notes, status, taken_at, created_at`

func scan(row pgx.Row) (*Reminder, error) {
	var m Reminder
	err := row.Scan(&m.ID, &m.OwnerID, &m.Medication, &m.Dosage, &m.Time,
		&m.Date, &m.Notes, &m.Status, &m.TakenAt, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Reminder) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reminder (id, owner_id, medication, dosage, time, date, notes,
			status, taken_at, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.OwnerID, m.Medication, m.Dosage, m.Time, m.Date, m.Notes,
		m.Status, m.TakenAt, m.CreatedAt)
	return err
}

func (r *repoPG) GetByOwner(ctx context.Context, id uuid.UUID, owner string) (*Reminder, error) {
	return scan(r.pool.QueryRow(ctx,
		`SELECT `+cols+` FROM reminder WHERE id = $1 AND owner_id = $2`, id, owner))
}

func (r *repoPG) ListByOwner(ctx context.Context, owner string) ([]*Reminder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM reminder WHERE owner_id = $1 ORDER BY date ASC, time ASC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Reminder
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, m *Reminder) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reminder SET medication=$3, dosage=$4, time=$5, date=$6, notes=$7
		WHERE id = $1 AND owner_id = $2`,
		m.ID, m.OwnerID, m.Medication, m.Dosage, m.Time, m.Date, m.Notes)
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
		`DELETE FROM reminder WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) MarkTaken(ctx context.Context, id uuid.UUID, owner string) (*Reminder, error) {
	return scan(r.pool.QueryRow(ctx, `
		UPDATE reminder SET status = $3, taken_at = $4
		WHERE id = $1 AND owner_id = $2
		RETURNING `+cols,
		id, owner, StatusTaken, time.Now().UTC()))
}
