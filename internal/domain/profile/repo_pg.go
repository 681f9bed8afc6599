package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthvault/healthvault/internal/platform/httperr"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the PostgreSQL-backed Repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, owner_id, name, email, phone, profile_image,
	age, gender, blood_group, height, weight,
	address, city, province, cnic,
	medical_conditions, current_medications, past_surgeries,
	food_allergies, drug_allergies, other_allergies,
	emergency_contact_name, emergency_contact_relationship, emergency_contact_phone,
	created_at, updated_at`

func scan(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Email, &p.Phone, &p.ProfileImage,
		&p.Age, &p.Gender, &p.BloodGroup, &p.Height, &p.Weight,
		&p.Address, &p.City, &p.Province, &p.CNIC,
		&p.MedicalConditions, &p.CurrentMedications, &p.PastSurgeries,
		&p.FoodAllergies, &p.DrugAllergies, &p.OtherAllergies,
		&p.EmergencyContactName, &p.EmergencyContactRelationship, &p.EmergencyContactPhone,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

// FindOrCreate rides the UNIQUE(owner_id) constraint: the insert is a no-op
// when a row already exists, and the follow-up select returns whichever row
// won. Losing the race is not an error.
func (r *repoPG) FindOrCreate(ctx context.Context, defaults *Profile) (*Profile, error) {
	for attempt := 0; attempt < 2; attempt++ {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO profile (id, owner_id, name, email, phone, profile_image, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (owner_id) DO NOTHING`,
			uuid.New(), defaults.OwnerID, defaults.Name, defaults.Email, defaults.Phone,
			defaults.ProfileImage, defaults.CreatedAt, defaults.UpdatedAt)
		if err != nil {
			return nil, err
		}

		p, err := r.GetByOwner(ctx, defaults.OwnerID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return p, err
	}
	return nil, &httperr.ConflictError{Resource: "profile"}
}

func (r *repoPG) GetByOwner(ctx context.Context, owner string) (*Profile, error) {
	return scan(r.pool.QueryRow(ctx,
		`SELECT `+cols+` FROM profile WHERE owner_id = $1`, owner))
}

func (r *repoPG) Update(ctx context.Context, p *Profile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE profile SET name=$2, email=$3, phone=$4,
			age=$5, gender=$6, blood_group=$7, height=$8, weight=$9,
			address=$10, city=$11, province=$12, cnic=$13,
			medical_conditions=$14, current_medications=$15, past_surgeries=$16,
			food_allergies=$17, drug_allergies=$18, other_allergies=$19,
			emergency_contact_name=$20, emergency_contact_relationship=$21,
			emergency_contact_phone=$22, updated_at=$23
		WHERE owner_id = $1`,
		p.OwnerID, p.Name, p.Email, p.Phone,
		p.Age, p.Gender, p.BloodGroup, p.Height, p.Weight,
		p.Address, p.City, p.Province, p.CNIC,
		p.MedicalConditions, p.CurrentMedications, p.PastSurgeries,
		p.FoodAllergies, p.DrugAllergies, p.OtherAllergies,
		p.EmergencyContactName, p.EmergencyContactRelationship,
		p.EmergencyContactPhone, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateImage(ctx context.Context, owner, path string, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profile SET profile_image = $2, updated_at = $3 WHERE owner_id = $1`,
		owner, path, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
