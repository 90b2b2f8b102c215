package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO owners (name, email, phone_number, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, o.Name, o.Email, o.PhoneNumber, o.PasswordHash).Scan(&o.ID)
	if err != nil {
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone_number, password_hash
		FROM owners
		WHERE id = $1
	`, id)
	return scanOwner(row)
}

func (r *OwnersRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM owners WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *OwnersRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone_number, password_hash
		FROM owners
		WHERE lower(email) = lower($1)
	`, email)
	return scanOwner(row)
}

func (r *OwnersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM owners WHERE lower(email) = lower($1))
	`, email).Scan(&exists)
	return exists, err
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE owners
		SET name = $2, email = $3, phone_number = $4, password_hash = $5
		WHERE id = $1
	`, o.ID, o.Name, o.Email, o.PhoneNumber, o.PasswordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *OwnersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanOwner(row *sql.Row) (owners.Owner, error) {
	var o owners.Owner
	if err := row.Scan(&o.ID, &o.Name, &o.Email, &o.PhoneNumber, &o.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, apperr.ErrNotFound
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
