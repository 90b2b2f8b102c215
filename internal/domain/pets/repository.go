package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	// Delete cascades to the pet's medications, feeding schedules and
	// vet visits; the store owns referential integrity.
	Delete(ctx context.Context, id int64) error
}
