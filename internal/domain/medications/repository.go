package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) (Medication, error)
	GetByID(ctx context.Context, id int64) (Medication, error)
	// ListByPet returns medications ordered by TimeToAdminister ascending.
	ListByPet(ctx context.Context, petID int64) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, id int64) error
}
