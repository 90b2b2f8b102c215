package memory

import (
	"context"
	"sort"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/feedingschedules"
)

type feedingScheduleRepo struct {
	s *Store
}

func (r *feedingScheduleRepo) Create(_ context.Context, f feedingschedules.FeedingSchedule) (feedingschedules.FeedingSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f.ID = r.s.nextIDLocked()
	r.s.schedules[f.ID] = f
	return f, nil
}

func (r *feedingScheduleRepo) GetByID(_ context.Context, id int64) (feedingschedules.FeedingSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.schedules[id]
	if !ok {
		return feedingschedules.FeedingSchedule{}, apperr.ErrNotFound
	}
	return f, nil
}

func (r *feedingScheduleRepo) ListByPet(_ context.Context, petID int64) ([]feedingschedules.FeedingSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []feedingschedules.FeedingSchedule{}
	for _, f := range r.s.schedules {
		if f.PetID == petID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *feedingScheduleRepo) Update(_ context.Context, f feedingschedules.FeedingSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedules[f.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.schedules[f.ID] = f
	return nil
}

func (r *feedingScheduleRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.schedules[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.schedules, id)
	return nil
}
