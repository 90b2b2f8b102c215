package memory

import (
	"context"
	"sort"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/medications"
)

type medicationRepo struct {
	s *Store
}

func (r *medicationRepo) Create(_ context.Context, m medications.Medication) (medications.Medication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m.ID = r.s.nextIDLocked()
	r.s.meds[m.ID] = m
	return m, nil
}

func (r *medicationRepo) GetByID(_ context.Context, id int64) (medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.meds[id]
	if !ok {
		return medications.Medication{}, apperr.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) ListByPet(_ context.Context, petID int64) ([]medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []medications.Medication{}
	for _, m := range r.s.meds {
		if m.PetID == petID {
			out = append(out, m)
		}
	}
	// "HH:MM" sorts chronologically as text.
	sort.Slice(out, func(i, j int) bool {
		if out[i].TimeToAdminister != out[j].TimeToAdminister {
			return out[i].TimeToAdminister < out[j].TimeToAdminister
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *medicationRepo) Update(_ context.Context, m medications.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.meds[m.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.meds[m.ID] = m
	return nil
}

func (r *medicationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.meds[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.meds, id)
	return nil
}
