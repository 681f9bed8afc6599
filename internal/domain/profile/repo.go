package profile

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	// FindOrCreate returns the owner's profile, inserting defaults when none
	// exists. The insert must be atomic per owner: two concurrent calls for
	// the same owner yield the same row.
	FindOrCreate(ctx context.Context, defaults *Profile) (*Profile, error)
	GetByOwner(ctx context.Context, ownerID string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	// UpdateImage commits a new image path for the owner's profile.
	UpdateImage(ctx context.Context, ownerID, path string, updatedAt time.Time) error
}
