package owners

import "context"

type Repository interface {
	Create(ctx context.Context, o Owner) (Owner, error)
	GetByID(ctx context.Context, id int64) (Owner, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// GetByEmail and ExistsByEmail match case-insensitively.
	GetByEmail(ctx context.Context, email string) (Owner, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, o Owner) error
	// Delete cascades to the owner's pets and their child records.
	Delete(ctx context.Context, id int64) error
}
