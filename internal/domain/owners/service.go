package owners

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$`)
)

const maxNameLen = 100

// Hasher is the password primitive; satisfied by platform/hash.Hasher.
type Hasher interface {
	Hash(raw string) (string, error)
	Verify(hashed, raw string) bool
}

type Service struct {
	repo   Repository
	hasher Hasher
}

func NewService(repo Repository, hasher Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// NormalizeEmail is applied before every store lookup or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, email, name, phoneNumber, rawPassword string) (Owner, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)

	if email == "" {
		return Owner{}, apperr.Invalidf("Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return Owner{}, apperr.Invalidf("Email format is invalid")
	}
	if phoneNumber == "" {
		return Owner{}, apperr.Invalidf("Phone number cannot be empty")
	}
	if !phonePattern.MatchString(phoneNumber) {
		return Owner{}, apperr.Invalidf("Phone number format is invalid")
	}
	if name == "" {
		return Owner{}, apperr.Invalidf("Name cannot be empty")
	}
	if len(name) > maxNameLen {
		return Owner{}, apperr.Invalidf("Name must be at most %d characters", maxNameLen)
	}
	if rawPassword == "" {
		return Owner{}, apperr.Invalidf("Password cannot be empty")
	}
	if len(rawPassword) < 6 {
		return Owner{}, apperr.Invalidf("Password must be at least 6 characters")
	}

	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return Owner{}, err
	}
	if taken {
		return Owner{}, apperr.Conflictf("Email already registered")
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return Owner{}, err
	}

	return s.repo.Create(ctx, Owner{
		Name:         name,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: hashed,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (Owner, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Owner{}, apperr.NotFoundf("Owner not found with ID: %d", id)
		}
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Owner, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// UpdateInput fields are partial: nil or blank-after-trim means unchanged.
type UpdateInput struct {
	Name        *string
	PhoneNumber *string
	Email       *string
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, in UpdateInput) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			if len(name) > maxNameLen {
				return Owner{}, apperr.Invalidf("Name must be at most %d characters", maxNameLen)
			}
			o.Name = name
		}
	}
	if in.PhoneNumber != nil {
		if phone := strings.TrimSpace(*in.PhoneNumber); phone != "" {
			if !phonePattern.MatchString(phone) {
				return Owner{}, apperr.Invalidf("Phone number format is invalid")
			}
			o.PhoneNumber = phone
		}
	}
	if in.Email != nil {
		if email := NormalizeEmail(*in.Email); email != "" {
			if !emailPattern.MatchString(email) {
				return Owner{}, apperr.Invalidf("Email format is invalid")
			}
			if email != o.Email {
				taken, err := s.repo.ExistsByEmail(ctx, email)
				if err != nil {
					return Owner{}, err
				}
				if taken {
					return Owner{}, apperr.Conflictf("Email already registered")
				}
				o.Email = email
			}
		}
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}
	return o, nil
}

// VerifyPassword returns false for unknown emails; it never reveals
// whether the email or the password was the mismatch.
func (s *Service) VerifyPassword(ctx context.Context, email, rawPassword string) bool {
	o, err := s.GetByEmail(ctx, email)
	if err != nil {
		return false
	}
	return s.hasher.Verify(o.PasswordHash, rawPassword)
}
