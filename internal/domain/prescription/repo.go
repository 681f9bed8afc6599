package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a row is absent or belongs to another owner.
// Repositories never distinguish the two cases.
var ErrNotFound = errors.New("prescription not found")

// Repository persists prescriptions. Every method is owner-scoped: reads,
// updates, and deletes all run as a single statement filtered by both id and
// owner so a request can never race a deletion into mutating a foreign row.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByOwner(ctx context.Context, id uuid.UUID, owner string) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	DeleteByOwner(ctx context.Context, id uuid.UUID, owner string) error
	ListByOwner(ctx context.Context, owner string) ([]*Prescription, error)
}
