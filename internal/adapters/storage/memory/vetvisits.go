package memory

import (
	"context"
	"sort"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/vetvisits"
)

type vetVisitRepo struct {
	s *Store
}

func (r *vetVisitRepo) Create(_ context.Context, v vetvisits.VetVisit) (vetvisits.VetVisit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v.ID = r.s.nextIDLocked()
	r.s.visits[v.ID] = v
	return v, nil
}

func (r *vetVisitRepo) GetByID(_ context.Context, id int64) (vetvisits.VetVisit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.visits[id]
	if !ok {
		return vetvisits.VetVisit{}, apperr.ErrNotFound
	}
	return v, nil
}

func (r *vetVisitRepo) ListByPet(_ context.Context, petID int64) ([]vetvisits.VetVisit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []vetvisits.VetVisit{}
	for _, v := range r.s.visits {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VisitDate.Equal(out[j].VisitDate) {
			return out[i].VisitDate.Before(out[j].VisitDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *vetVisitRepo) Update(_ context.Context, v vetvisits.VetVisit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.visits[v.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.visits[v.ID] = v
	return nil
}

func (r *vetVisitRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.visits[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.visits, id)
	return nil
}
