package vetvisits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

const (
	maxVetNameLen = 100
	maxReasonLen  = 255
	maxNotesLen   = 1000
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
	VisitDate      time.Time
	NextVisitDate  *time.Time
	VetName        string
	ReasonForVisit string
	Notes          string
}

func (s *Service) Create(ctx context.Context, petID, callerOwnerID int64, in CreateInput) (VetVisit, error) {
	if err := s.pets.EnsurePetOwned(ctx, petID, callerOwnerID); err != nil {
		return VetVisit{}, err
	}

	vetName := strings.TrimSpace(in.VetName)
	reason := strings.TrimSpace(in.ReasonForVisit)
	notes := strings.TrimSpace(in.Notes)

	if in.VisitDate.IsZero() {
		return VetVisit{}, apperr.Invalidf("Visit date is required")
	}
	if vetName == "" {
		return VetVisit{}, apperr.Invalidf("Vet name cannot be empty")
	}
	if len(vetName) > maxVetNameLen {
		return VetVisit{}, apperr.Invalidf("Vet name must be at most %d characters", maxVetNameLen)
	}
	if reason == "" {
		return VetVisit{}, apperr.Invalidf("Reason for visit cannot be empty")
	}
	if len(reason) > maxReasonLen {
		return VetVisit{}, apperr.Invalidf("Reason for visit must be at most %d characters", maxReasonLen)
	}
	if len(notes) > maxNotesLen {
		return VetVisit{}, apperr.Invalidf("Notes must be at most %d characters", maxNotesLen)
	}

	return s.repo.Create(ctx, VetVisit{
		PetID:          petID,
		VisitDate:      in.VisitDate,
		NextVisitDate:  in.NextVisitDate,
		VetName:        vetName,
		ReasonForVisit: reason,
		Notes:          notes,
	})
}

func (s *Service) GetByID(ctx context.Context, id, callerOwnerID int64) (VetVisit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return VetVisit{}, apperr.NotFoundf("Vet visit not found with ID: %d", id)
		}
		return VetVisit{}, err
	}
	if err := s.pets.EnsurePetOwned(ctx, v.PetID, callerOwnerID); err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

func (s *Service) ListForPet(ctx context.Context, petID, callerOwnerID int64) ([]VetVisit, error) {
	if err := s.pets.EnsurePetOwned(ctx, petID, callerOwnerID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

// UpdateInput fields are partial: nil means unchanged. VetName and
// ReasonForVisit stay required, so a supplied blank is an error rather
// than an ignore; Notes may be blanked out.
type UpdateInput struct {
	VisitDate      *time.Time
	NextVisitDate  *time.Time
	VetName        *string
	ReasonForVisit *string
	Notes          *string
}

func (s *Service) Update(ctx context.Context, id, callerOwnerID int64, in UpdateInput) (VetVisit, error) {
	v, err := s.GetByID(ctx, id, callerOwnerID)
	if err != nil {
		return VetVisit{}, err
	}

	if in.VisitDate != nil {
		v.VisitDate = *in.VisitDate
	}
	if in.NextVisitDate != nil {
		v.NextVisitDate = in.NextVisitDate
	}
	if in.VetName != nil {
		vetName := strings.TrimSpace(*in.VetName)
		if vetName == "" {
			return VetVisit{}, apperr.Invalidf("Vet name cannot be empty")
		}
		if len(vetName) > maxVetNameLen {
			return VetVisit{}, apperr.Invalidf("Vet name must be at most %d characters", maxVetNameLen)
		}
		v.VetName = vetName
	}
	if in.ReasonForVisit != nil {
		reason := strings.TrimSpace(*in.ReasonForVisit)
		if reason == "" {
			return VetVisit{}, apperr.Invalidf("Reason for visit cannot be empty")
		}
		if len(reason) > maxReasonLen {
			return VetVisit{}, apperr.Invalidf("Reason for visit must be at most %d characters", maxReasonLen)
		}
		v.ReasonForVisit = reason
	}
	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		if len(notes) > maxNotesLen {
			return VetVisit{}, apperr.Invalidf("Notes must be at most %d characters", maxNotesLen)
		}
		v.Notes = notes
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id, callerOwnerID int64) error {
	if _, err := s.GetByID(ctx, id, callerOwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
