package feedingschedules

import "context"

type Repository interface {
	Create(ctx context.Context, f FeedingSchedule) (FeedingSchedule, error)
	GetByID(ctx context.Context, id int64) (FeedingSchedule, error)
	// ListByPet returns schedules ordered by Time ascending.
	ListByPet(ctx context.Context, petID int64) ([]FeedingSchedule, error)
	Update(ctx context.Context, f FeedingSchedule) error
	Delete(ctx context.Context, id int64) error
}
