package memory

import (
	"context"
	"strings"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/owners"
)

type ownerRepo struct {
	s *Store
}

func (r *ownerRepo) Create(_ context.Context, o owners.Owner) (owners.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o.ID = r.s.nextIDLocked()
	r.s.owners[o.ID] = o
	return o, nil
}

func (r *ownerRepo) GetByID(_ context.Context, id int64) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return owners.Owner{}, apperr.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.owners[id]
	return ok, nil
}

func (r *ownerRepo) GetByEmail(_ context.Context, email string) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if strings.EqualFold(o.Email, email) {
			return o, nil
		}
	}
	return owners.Owner{}, apperr.ErrNotFound
}

func (r *ownerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if strings.EqualFold(o.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ownerRepo) Update(_ context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[o.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.owners[o.ID] = o
	return nil
}

func (r *ownerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.owners, id)
	for petID, p := range r.s.pets {
		if p.OwnerID == id {
			r.s.deletePetLocked(petID)
		}
	}
	return nil
}
