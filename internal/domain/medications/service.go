package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

const (
	maxNameLen      = 100
	maxFrequencyLen = 100
)

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
	Name             string
	DosageAmount     float64
	DosageUnit       string
	Frequency        string
	TimeToAdminister string
	StartDate        time.Time
	EndDate          *time.Time
}

func (s *Service) Create(ctx context.Context, petID, callerOwnerID int64, in CreateInput) (Medication, error) {
	if err := s.pets.EnsurePetOwned(ctx, petID, callerOwnerID); err != nil {
		return Medication{}, err
	}

	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.DosageUnit)
	frequency := strings.TrimSpace(in.Frequency)

	if name == "" {
		return Medication{}, apperr.Invalidf("Medication name cannot be empty")
	}
	if len(name) > maxNameLen {
		return Medication{}, apperr.Invalidf("Medication name must be at most %d characters", maxNameLen)
	}
	if in.DosageAmount <= 0 {
		return Medication{}, apperr.Invalidf("Dosage amount must be positive")
	}
	if unit == "" {
		return Medication{}, apperr.Invalidf("Dosage unit cannot be empty")
	}
	if frequency == "" {
		return Medication{}, apperr.Invalidf("Frequency cannot be empty")
	}
	if len(frequency) > maxFrequencyLen {
		return Medication{}, apperr.Invalidf("Frequency must be at most %d characters", maxFrequencyLen)
	}
	administer, err := normalizeClock(in.TimeToAdminister)
	if err != nil {
		return Medication{}, apperr.Invalidf("Time to administer must be HH:MM")
	}
	if in.StartDate.IsZero() {
		return Medication{}, apperr.Invalidf("Start date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return Medication{}, apperr.Invalidf("End date cannot be before start date")
	}

	return s.repo.Create(ctx, Medication{
		PetID:            petID,
		Name:             name,
		DosageAmount:     in.DosageAmount,
		DosageUnit:       unit,
		Frequency:        frequency,
		TimeToAdminister: administer,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
	})
}

// GetByID loads the medication and authorizes its pet via the same
// predicate every pet-scoped read uses.
func (s *Service) GetByID(ctx context.Context, id, callerOwnerID int64) (Medication, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Medication{}, apperr.NotFoundf("Medication not found with ID: %d", id)
		}
		return Medication{}, err
	}
	if err := s.pets.EnsurePetOwned(ctx, m.PetID, callerOwnerID); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) ListForPet(ctx context.Context, petID, callerOwnerID int64) ([]Medication, error) {
	if err := s.pets.EnsurePetOwned(ctx, petID, callerOwnerID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

// UpdateInput fields are partial: nil means unchanged; blank-after-trim
// strings and non-positive amounts are ignored. A supplied EndDate is
// validated against the record's startDate after any pending StartDate
// update has been applied.
type UpdateInput struct {
	Name             *string
	DosageAmount     *float64
	DosageUnit       *string
	Frequency        *string
	TimeToAdminister *string
	StartDate        *time.Time
	EndDate          *time.Time
}

func (s *Service) Update(ctx context.Context, id, callerOwnerID int64, in UpdateInput) (Medication, error) {
	m, err := s.GetByID(ctx, id, callerOwnerID)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			if len(name) > maxNameLen {
				return Medication{}, apperr.Invalidf("Medication name must be at most %d characters", maxNameLen)
			}
			m.Name = name
		}
	}
	if in.DosageAmount != nil && *in.DosageAmount > 0 {
		m.DosageAmount = *in.DosageAmount
	}
	if in.DosageUnit != nil {
		if unit := strings.TrimSpace(*in.DosageUnit); unit != "" {
			m.DosageUnit = unit
		}
	}
	if in.Frequency != nil {
		if frequency := strings.TrimSpace(*in.Frequency); frequency != "" {
			if len(frequency) > maxFrequencyLen {
				return Medication{}, apperr.Invalidf("Frequency must be at most %d characters", maxFrequencyLen)
			}
			m.Frequency = frequency
		}
	}
	if in.TimeToAdminister != nil {
		if strings.TrimSpace(*in.TimeToAdminister) != "" {
			administer, err := normalizeClock(*in.TimeToAdminister)
			if err != nil {
				return Medication{}, apperr.Invalidf("Time to administer must be HH:MM")
			}
			m.TimeToAdminister = administer
		}
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		if in.EndDate.Before(m.StartDate) {
			return Medication{}, apperr.Invalidf("End date cannot be before start date")
		}
		m.EndDate = in.EndDate
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id, callerOwnerID int64) error {
	if _, err := s.GetByID(ctx, id, callerOwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// normalizeClock accepts "H:MM" or "HH:MM" and returns zero-padded "HH:MM",
// so lexicographic ordering in the store matches chronological ordering.
func normalizeClock(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}
