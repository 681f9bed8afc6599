package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/healthvault/internal/platform/httperr"
	"github.com/healthvault/healthvault/internal/platform/validate"
)

// Service owns the reminder rules: every new reminder starts pending, every
// lookup is owner scoped, and marking a dose taken is a single atomic flip.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, owner string) ([]*Reminder, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// validated checks the full-replace field set and returns the parsed date.
func validated(in Input) (time.Time, error) {
	var v validate.Errors
	v.Required("medication", in.Medication)
	v.Required("dosage", in.Dosage)
	v.Required("time", in.Time)
	var date time.Time
	if in.Date == "" {
		v.Add("date", "is required")
	} else {
		date = v.ISODate("date", in.Date)
	}
	return date, v.Err()
}

func (s *Service) Create(ctx context.Context, owner string, in Input) (*Reminder, error) {
	date, err := validated(in)
	if err != nil {
		return nil, err
	}

	m := &Reminder{
		OwnerID:    owner,
		Medication: in.Medication,
		Dosage:     in.Dosage,
		Time:       in.Time,
		Date:       date,
		Notes:      in.Notes,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the schedule fields. Status and takenAt are untouched;
// marking a dose taken goes through MarkTaken only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, owner string, in Input) (*Reminder, error) {
	date, err := validated(in)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetByOwner(ctx, id, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("reminder")
		}
		return nil, err
	}

	m.Medication = in.Medication
	m.Dosage = in.Dosage
	m.Time = in.Time
	m.Date = date
	m.Notes = in.Notes

	// The repository re-checks id+owner in the UPDATE itself, so a
	// concurrent delete surfaces here as not-found.
	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("reminder")
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, owner string) error {
	if err := s.repo.DeleteByOwner(ctx, id, owner); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound("reminder")
		}
		return err
	}
	return nil
}

// MarkTaken records the dose as taken. The transition is unconditional: an
// already-taken reminder just gets a fresh taken_at stamp.
func (s *Service) MarkTaken(ctx context.Context, id uuid.UUID, owner string) (*Reminder, error) {
	m, err := s.repo.MarkTaken(ctx, id, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("reminder")
		}
		return nil, err
	}
	return m, nil
}
