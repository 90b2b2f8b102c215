package feedingschedules

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

const maxFoodTypeLen = 100

// PetGuard is the ownership predicate, satisfied by the pet service.
type PetGuard interface {
	EnsurePetOwned(ctx context.Context, petID, callerOwnerID int64) error
}

type Service struct {
	repo Repository
	pets PetGuard
}

func NewService(repo Repository, pets PetGuard) *Service {
	return &Service{repo: repo, pets: pets}
}

type CreateInput struct {
	Time         string
	FoodType     string
	Quantity     float64
	QuantityUnit string
}

func (s *Service) Create(ctx context.Context, petID, callerOwnerID int64, in CreateInput) (FeedingSchedule, error) {
	if err := s.pets.EnsurePetOwned(ctx, petID, callerOwnerID); err != nil {
		return FeedingSchedule{}, err
	}

	clock, err := normalizeClock(in.Time)
	if err != nil {
		return FeedingSchedule{}, apperr.Invalidf("Feeding time must be HH:MM")
	}
	foodType := strings.TrimSpace(in.FoodType)
	if foodType == "" {
		return FeedingSchedule{}, apperr.Invalidf("Food type cannot be empty")
	}
	if len(foodType) > maxFoodTypeLen {
		return FeedingSchedule{}, apperr.Invalidf("Food type must be at most %d characters", maxFoodTypeLen)
	}
	if in.Quantity <= 0 {
		return FeedingSchedule{}, apperr.Invalidf("Quantity must be positive")
	}
	unit := QuantityUnit(strings.ToUpper(strings.TrimSpace(in.QuantityUnit)))
	if !unit.Valid() {
		return FeedingSchedule{}, apperr.Invalidf("Quantity unit must be specified (CUPS, GRAMS, OUNCES or CANS)")
	}

	return s.repo.Create(ctx, FeedingSchedule{
		PetID:        petID,
		Time:         clock,
		FoodType:     foodType,
		Quantity:     in.Quantity,
		QuantityUnit: unit,
	})
}

func (s *Service) GetByID(ctx context.Context, id, callerOwnerID int64) (FeedingSchedule, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return FeedingSchedule{}, apperr.NotFoundf("Feeding schedule not found with ID: %d", id)
		}
		return FeedingSchedule{}, err
	}
	if err := s.pets.EnsurePetOwned(ctx, f.PetID, callerOwnerID); err != nil {
		return FeedingSchedule{}, err
	}
	return f, nil
}

func (s *Service) ListForPet(ctx context.Context, petID, callerOwnerID int64) ([]FeedingSchedule, error) {
	if err := s.pets.EnsurePetOwned(ctx, petID, callerOwnerID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

// UpdateInput fields are partial: nil means unchanged. A present Quantity
// must be positive; blank-after-trim strings are ignored.
type UpdateInput struct {
	Time         *string
	FoodType     *string
	Quantity     *float64
	QuantityUnit *string
}

func (s *Service) Update(ctx context.Context, id, callerOwnerID int64, in UpdateInput) (FeedingSchedule, error) {
	f, err := s.GetByID(ctx, id, callerOwnerID)
	if err != nil {
		return FeedingSchedule{}, err
	}

	if in.Time != nil {
		if strings.TrimSpace(*in.Time) != "" {
			clock, err := normalizeClock(*in.Time)
			if err != nil {
				return FeedingSchedule{}, apperr.Invalidf("Feeding time must be HH:MM")
			}
			f.Time = clock
		}
	}
	if in.FoodType != nil {
		if foodType := strings.TrimSpace(*in.FoodType); foodType != "" {
			if len(foodType) > maxFoodTypeLen {
				return FeedingSchedule{}, apperr.Invalidf("Food type must be at most %d characters", maxFoodTypeLen)
			}
			f.FoodType = foodType
		}
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return FeedingSchedule{}, apperr.Invalidf("Quantity must be positive")
		}
		f.Quantity = *in.Quantity
	}
	if in.QuantityUnit != nil {
		unit := QuantityUnit(strings.ToUpper(strings.TrimSpace(*in.QuantityUnit)))
		if !unit.Valid() {
			return FeedingSchedule{}, apperr.Invalidf("Quantity unit must be CUPS, GRAMS, OUNCES or CANS")
		}
		f.QuantityUnit = unit
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return FeedingSchedule{}, err
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id, callerOwnerID int64) error {
	if _, err := s.GetByID(ctx, id, callerOwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func normalizeClock(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}
