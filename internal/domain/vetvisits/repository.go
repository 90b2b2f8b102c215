package vetvisits

import "context"

type Repository interface {
	Create(ctx context.Context, v VetVisit) (VetVisit, error)
	GetByID(ctx context.Context, id int64) (VetVisit, error)
	// ListByPet returns visits ordered by VisitDate ascending.
	ListByPet(ctx context.Context, petID int64) ([]VetVisit, error)
	Update(ctx context.Context, v VetVisit) error
	Delete(ctx context.Context, id int64) error
}
