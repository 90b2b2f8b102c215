// Package memory is the in-process storage adapter. One Store backs all
// repositories so cross-entity invariants, above all cascade deletes, live
// in a single place under a single lock.
package memory

import (
	"sync"

	"github.com/miguelocque/PetTrackr/internal/domain/feedingschedules"
	"github.com/miguelocque/PetTrackr/internal/domain/medications"
	"github.com/miguelocque/PetTrackr/internal/domain/owners"
	"github.com/miguelocque/PetTrackr/internal/domain/pets"
	"github.com/miguelocque/PetTrackr/internal/domain/vetvisits"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64

	owners    map[int64]owners.Owner
	pets      map[int64]pets.Pet
	meds      map[int64]medications.Medication
	schedules map[int64]feedingschedules.FeedingSchedule
	visits    map[int64]vetvisits.VetVisit
}

func NewStore() *Store {
	return &Store{
		owners:    map[int64]owners.Owner{},
		pets:      map[int64]pets.Pet{},
		meds:      map[int64]medications.Medication{},
		schedules: map[int64]feedingschedules.FeedingSchedule{},
		visits:    map[int64]vetvisits.VetVisit{},
	}
}

// nextIDLocked assumes the write lock is held.
func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// deletePetLocked removes the pet and every record referencing it.
// Assumes the write lock is held.
func (s *Store) deletePetLocked(petID int64) {
	delete(s.pets, petID)
	for id, m := range s.meds {
		if m.PetID == petID {
			delete(s.meds, id)
		}
	}
	for id, f := range s.schedules {
		if f.PetID == petID {
			delete(s.schedules, id)
		}
	}
	for id, v := range s.visits {
		if v.PetID == petID {
			delete(s.visits, id)
		}
	}
}

func (s *Store) Owners() owners.Repository {
	return &ownerRepo{s: s}
}

func (s *Store) Pets() pets.Repository {
	return &petRepo{s: s}
}

func (s *Store) Medications() medications.Repository {
	return &medicationRepo{s: s}
}

func (s *Store) FeedingSchedules() feedingschedules.Repository {
	return &feedingScheduleRepo{s: s}
}

func (s *Store) VetVisits() vetvisits.Repository {
	return &vetVisitRepo{s: s}
}
