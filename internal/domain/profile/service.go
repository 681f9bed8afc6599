package profile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthvault/healthvault/internal/platform/assetstore"
	"github.com/healthvault/healthvault/internal/platform/auth"
	"github.com/healthvault/healthvault/internal/platform/httperr"
	"github.com/healthvault/healthvault/internal/platform/validate"
)

// MaxImageBytes caps an uploaded profile image at 5 MiB.
const MaxImageBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Service owns the singleton profile: lazy find-or-create on first access,
// merge-only updates, and the image asset lifecycle.
type Service struct {
	repo   Repository
	assets assetstore.Store
	log    zerolog.Logger
}

func NewService(repo Repository, assets assetstore.Store, log zerolog.Logger) *Service {
	return &Service{repo: repo, assets: assets, log: log}
}

func defaults(ident auth.Identity) *Profile {
	now := time.Now().UTC()
	return &Profile{
		OwnerID:      ident.UserID,
		Name:         ident.Name,
		Email:        ident.Email,
		ProfileImage: DefaultImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Get returns the owner's profile, creating one seeded from the identity
// claims when none exists yet.
func (s *Service) Get(ctx context.Context, ident auth.Identity) (*Profile, error) {
	return s.repo.FindOrCreate(ctx, defaults(ident))
}

// Update merges only the keys present in the input into the stored profile,
// creating it first if needed.
func (s *Service) Update(ctx context.Context, ident auth.Identity, in UpdateInput) (*Profile, error) {
	if err := validated(in); err != nil {
		return nil, err
	}

	p, err := s.repo.FindOrCreate(ctx, defaults(ident))
	if err != nil {
		return nil, err
	}

	merge(p, in)
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("profile")
		}
		return nil, err
	}
	return p, nil
}

func validated(in UpdateInput) error {
	var v validate.Errors
	if in.Email != nil && *in.Email != "" {
		v.Email("email", *in.Email)
	}
	if in.Phone != nil && *in.Phone != "" {
		v.Phone("phone", *in.Phone)
	}
	if in.Age != nil {
		v.IntRange("age", *in.Age, 0, 120)
	}
	if in.Gender != nil {
		v.Enum("gender", *in.Gender, Genders)
	}
	if in.BloodGroup != nil {
		v.Enum("bloodGroup", *in.BloodGroup, BloodGroups)
	}
	if in.Height != nil {
		v.FloatMin("height", *in.Height, 0)
	}
	if in.Weight != nil {
		v.FloatMin("weight", *in.Weight, 0)
	}
	if in.EmergencyContactPhone != nil && *in.EmergencyContactPhone != "" {
		v.Phone("emergencyContactPhone", *in.EmergencyContactPhone)
	}
	return v.Err()
}

func merge(p *Profile, in UpdateInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Age != nil {
		p.Age = in.Age
	}
	if in.Gender != nil {
		p.Gender = in.Gender
	}
	if in.BloodGroup != nil {
		p.BloodGroup = in.BloodGroup
	}
	if in.Height != nil {
		p.Height = in.Height
	}
	if in.Weight != nil {
		p.Weight = in.Weight
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Province != nil {
		p.Province = *in.Province
	}
	if in.CNIC != nil {
		p.CNIC = *in.CNIC
	}
	if in.MedicalConditions != nil {
		p.MedicalConditions = *in.MedicalConditions
	}
	if in.CurrentMedications != nil {
		p.CurrentMedications = *in.CurrentMedications
	}
	if in.PastSurgeries != nil {
		p.PastSurgeries = *in.PastSurgeries
	}
	if in.FoodAllergies != nil {
		p.FoodAllergies = *in.FoodAllergies
	}
	if in.DrugAllergies != nil {
		p.DrugAllergies = *in.DrugAllergies
	}
	if in.OtherAllergies != nil {
		p.OtherAllergies = *in.OtherAllergies
	}
	if in.EmergencyContactName != nil {
		p.EmergencyContactName = *in.EmergencyContactName
	}
	if in.EmergencyContactRelationship != nil {
		p.EmergencyContactRelationship = *in.EmergencyContactRelationship
	}
	if in.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = *in.EmergencyContactPhone
	}
}

// ReplaceImage stores the uploaded image and swaps it into the profile. The
// new asset is written first and the path committed before the old asset is
// touched, so a failure anywhere leaves the previous image fully intact; the
// old-asset cleanup afterwards is best effort and never fails the request.
func (s *Service) ReplaceImage(ctx context.Context, owner, filename, contentType string, r io.Reader) (*Profile, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var v validate.Errors
	if !allowedImageExts[ext] || !allowedImageTypes[contentType] {
		v.Add("image", "must be a jpg, jpeg, or png image")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("profile")
		}
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, &httperr.AssetError{Op: "read", Err: err}
	}
	if len(data) > MaxImageBytes {
		v.Add("image", "must be 5 MB or smaller")
		return nil, v.Err()
	}

	newPath, err := s.assets.Put(ctx, ext, bytes.NewReader(data))
	if err != nil {
		return nil, &httperr.AssetError{Op: "store", Err: err}
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateImage(ctx, owner, newPath, now); err != nil {
		// The new asset never made it into the record: remove the orphan.
		if derr := s.assets.Delete(ctx, newPath); derr != nil {
			s.log.Warn().Err(derr).Str("path", newPath).
				Msg("failed to remove orphaned profile image")
		}
		if errors.Is(err, ErrNotFound) {
			return nil, httperr.NotFound("profile")
		}
		return nil, err
	}

	if old := p.ProfileImage; old != DefaultImage && old != "" {
		if derr := s.assets.Delete(ctx, old); derr != nil {
			s.log.Warn().Err(derr).Str("path", old).
				Msg("failed to delete replaced profile image")
		}
	}

	p.ProfileImage = newPath
	p.UpdatedAt = now
	return p, nil
}
