package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

const (
	maxNameLen  = 100
	maxTypeLen  = 50
	maxBreedLen = 50
)

// OwnerDirectory answers owner-existence checks; satisfied by the owners
// repository.
type OwnerDirectory interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// PhotoStore validates and persists pet images, returning the stored
// filename.
type PhotoStore interface {
	Save(petID int64, filename string, data []byte) (string, error)
}

type Service struct {
	repo   Repository
	owners OwnerDirectory
	photos PhotoStore
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerDirectory, photos PhotoStore) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		photos: photos,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name          string
	Type          string
	Breed         string
	Weight        float64
	WeightType    string
	ActivityLevel string
	DateOfBirth   time.Time
}

func (s *Service) Create(ctx context.Context, ownerID int64, in CreateInput) (Pet, error) {
	exists, err := s.owners.ExistsByID(ctx, ownerID)
	if err != nil {
		return Pet{}, err
	}
	if !exists {
		return Pet{}, apperr.NotFoundf("Owner not found with ID: %d", ownerID)
	}

	name := strings.TrimSpace(in.Name)
	petType := strings.TrimSpace(in.Type)
	breed := strings.TrimSpace(in.Breed)

	if name == "" {
		return Pet{}, apperr.Invalidf("Pet name cannot be empty")
	}
	if len(name) > maxNameLen {
		return Pet{}, apperr.Invalidf("Pet name must be at most %d characters", maxNameLen)
	}
	if petType == "" {
		return Pet{}, apperr.Invalidf("Pet type cannot be empty")
	}
	if len(petType) > maxTypeLen {
		return Pet{}, apperr.Invalidf("Pet type must be at most %d characters", maxTypeLen)
	}
	if breed == "" {
		return Pet{}, apperr.Invalidf("Pet breed cannot be empty")
	}
	if len(breed) > maxBreedLen {
		return Pet{}, apperr.Invalidf("Pet breed must be at most %d characters", maxBreedLen)
	}
	if in.Weight <= 0 {
		return Pet{}, apperr.Invalidf("Pet weight must be greater than zero")
	}
	weightType := WeightType(strings.ToUpper(strings.TrimSpace(in.WeightType)))
	if !weightType.Valid() {
		return Pet{}, apperr.Invalidf("Weight type must be specified (KG or LBS)")
	}
	activity := ActivityLevel(strings.ToUpper(strings.TrimSpace(in.ActivityLevel)))
	if !activity.Valid() {
		return Pet{}, apperr.Invalidf("Activity level must be specified (LOW, MEDIUM or HIGH)")
	}
	if in.DateOfBirth.IsZero() {
		return Pet{}, apperr.Invalidf("Date of birth is required")
	}
	if in.DateOfBirth.After(s.now()) {
		return Pet{}, apperr.Invalidf("Date of birth cannot be in the future")
	}

	return s.repo.Create(ctx, Pet{
		OwnerID:       ownerID,
		Name:          name,
		Type:          petType,
		Breed:         breed,
		Weight:        in.Weight,
		WeightType:    weightType,
		DateOfBirth:   in.DateOfBirth,
		ActivityLevel: activity,
	})
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error) {
	exists, err := s.owners.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundf("Owner not found with ID: %d", ownerID)
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetByID is the authorization primitive every pet-scoped operation funnels
// through: NotFound when the pet does not exist, Forbidden when it belongs
// to a different owner.
func (s *Service) GetByID(ctx context.Context, petID, callerOwnerID int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Pet{}, apperr.NotFoundf("Pet not found with ID: %d", petID)
		}
		return Pet{}, err
	}
	if p.OwnerID != callerOwnerID {
		return Pet{}, apperr.Forbiddenf("Access denied: Pet does not belong to this owner")
	}
	return p, nil
}

// EnsurePetOwned lets the child-record services reuse the ownership
// predicate without re-implementing it.
func (s *Service) EnsurePetOwned(ctx context.Context, petID, callerOwnerID int64) error {
	_, err := s.GetByID(ctx, petID, callerOwnerID)
	return err
}

// UpdateInput fields are partial: nil means unchanged, and blank-after-trim
// strings are ignored.
type UpdateInput struct {
	Name          *string
	Type          *string
	Breed         *string
	Weight        *float64
	WeightType    *string
	ActivityLevel *string
	DateOfBirth   *time.Time
}

func (s *Service) Update(ctx context.Context, petID, callerOwnerID int64, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID, callerOwnerID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			if len(name) > maxNameLen {
				return Pet{}, apperr.Invalidf("Pet name must be at most %d characters", maxNameLen)
			}
			p.Name = name
		}
	}
	if in.Type != nil {
		if petType := strings.TrimSpace(*in.Type); petType != "" {
			if len(petType) > maxTypeLen {
				return Pet{}, apperr.Invalidf("Pet type must be at most %d characters", maxTypeLen)
			}
			p.Type = petType
		}
	}
	if in.Breed != nil {
		if breed := strings.TrimSpace(*in.Breed); breed != "" {
			if len(breed) > maxBreedLen {
				return Pet{}, apperr.Invalidf("Pet breed must be at most %d characters", maxBreedLen)
			}
			p.Breed = breed
		}
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			return Pet{}, apperr.Invalidf("Pet weight must be greater than zero")
		}
		p.Weight = *in.Weight
	}
	if in.WeightType != nil {
		weightType := WeightType(strings.ToUpper(strings.TrimSpace(*in.WeightType)))
		if !weightType.Valid() {
			return Pet{}, apperr.Invalidf("Weight type must be KG or LBS")
		}
		p.WeightType = weightType
	}
	if in.ActivityLevel != nil {
		activity := ActivityLevel(strings.ToUpper(strings.TrimSpace(*in.ActivityLevel)))
		if !activity.Valid() {
			return Pet{}, apperr.Invalidf("Activity level must be LOW, MEDIUM or HIGH")
		}
		p.ActivityLevel = activity
	}
	if in.DateOfBirth != nil {
		if in.DateOfBirth.After(s.now()) {
			return Pet{}, apperr.Invalidf("Date of birth cannot be in the future")
		}
		p.DateOfBirth = *in.DateOfBirth
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID, callerOwnerID int64) error {
	if _, err := s.GetByID(ctx, petID, callerOwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

// UpdatePhoto stores the image and records the returned filename on the pet.
func (s *Service) UpdatePhoto(ctx context.Context, petID, callerOwnerID int64, filename string, data []byte) (Pet, error) {
	p, err := s.GetByID(ctx, petID, callerOwnerID)
	if err != nil {
		return Pet{}, err
	}

	stored, err := s.photos.Save(petID, filename, data)
	if err != nil {
		return Pet{}, err
	}

	p.PhotoURL = stored
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
