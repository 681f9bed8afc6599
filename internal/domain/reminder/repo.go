package reminder

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("reminder not found")

type Repository interface {
	Create(ctx context.Context, r *Reminder) error
	GetByOwner(ctx context.Context, id uuid.UUID, ownerID string) (*Reminder, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Reminder, error)
	Update(ctx context.Context, r *Reminder) error
	DeleteByOwner(ctx context.Context, id uuid.UUID, ownerID string) error
	// MarkTaken flips the reminder to taken and stamps taken_at in a
	// single statement, returning the updated row.
	MarkTaken(ctx context.Context, id uuid.UUID, ownerID string) (*Reminder, error)
}
