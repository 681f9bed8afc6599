package prescription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/healthvault/internal/platform/httperr"
	"github.com/healthvault/healthvault/internal/platform/notify"
	"github.com/healthvault/healthvault/internal/platform/validate"
)

// Service enforces the prescription business rules: field validation before
// the store is touched, owner scoping on every operation, and explicit
// updated-at refresh on every persisted mutation.
type Service struct {
	repo   Repository
	mailer notify.EmailSender
	tmpl   *notify.TemplateEngine
}

func NewService(repo Repository, mailer notify.EmailSender, tmpl *notify.TemplateEngine) *Service {
	return &Service{repo: repo, mailer: mailer, tmpl: tmpl}
}

// validated checks the full-replace field set and returns the parsed date.
func validated(in Input) (time.Time, error) {
	var v validate.Errors
	v.Required("medicationName", in.MedicationName)
	v.Required("doctorName", in.DoctorName)
	v.Required("patientName", in.PatientName)
	v.Required("dosage", in.Dosage)
	v.Required("instructions", in.Instructions)
	var date time.Time
	if in.Date == "" {
		v.Add("date", "is required")
	} else {
		date = v.ISODate("date", in.Date)
	}
	return date, v.Err()
}

func (s *Service) List(ctx context.Context, owner string) ([]*Prescription, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) Create(ctx context.Context, owner string, in Input) (*Prescription, error) {
	date, err := validated(in)
	if err != nil {
		return nil, err
	}

	sideEffects := in.SideEffects
	if sideEffects == "" {
		sideEffects = DefaultSideEffects
	}

	now := time.Now().UTC()
	p := &Prescription{
		OwnerID:        owner,
		MedicationName: in.MedicationName,
		DoctorName:     in.DoctorName,
		PatientName:    in.PatientName,
		Date:           date,
		Dosage:         in.Dosage,
		Instructions:   in.Instructions,
		SideEffects:    sideEffects,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, owner string, in Input) (*Prescription, error) {
	date, err := validated(in)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetByOwner(ctx, id, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("prescription")
		}
		return nil, err
	}

	sideEffects := in.SideEffects
	if sideEffects == "" {
		sideEffects = DefaultSideEffects
	}

	p.MedicationName = in.MedicationName
	p.DoctorName = in.DoctorName
	p.PatientName = in.PatientName
	p.Date = date
	p.Dosage = in.Dosage
	p.Instructions = in.Instructions
	p.SideEffects = sideEffects
	p.UpdatedAt = time.Now().UTC()

	// The repository re-checks id+owner in the UPDATE itself, so a
	// concurrent delete surfaces here as not-found rather than resurrecting
	// the row.
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("prescription")
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, owner string) error {
	if err := s.repo.DeleteByOwner(ctx, id, owner); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound("prescription")
		}
		return err
	}
	return nil
}

// Share emails a human-readable summary of the prescription to recipientEmail.
func (s *Service) Share(ctx context.Context, id uuid.UUID, owner, recipientEmail string) error {
	var v validate.Errors
	v.Email("recipientEmail", recipientEmail)
	if err := v.Err(); err != nil {
		return err
	}

	p, err := s.repo.GetByOwner(ctx, id, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound("prescription")
		}
		return err
	}

	subject, body, err := s.tmpl.Render(notify.TemplatePrescriptionShare, map[string]string{
		"medication":   p.MedicationName,
		"doctor":       p.DoctorName,
		"patient":      p.PatientName,
		"date":         p.Date.Format("January 2, 2006"),
		"dosage":       p.Dosage,
		"instructions": p.Instructions,
		"side_effects": p.SideEffects,
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendEmail(ctx, recipientEmail, subject, body); err != nil {
		return &httperr.DeliveryError{Err: err}
	}
	return nil
}
