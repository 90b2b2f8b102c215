package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			owner_id, name, type, breed,
			weight, weight_type, date_of_birth, activity_level, photo_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		p.OwnerID,
		p.Name,
		p.Type,
		p.Breed,
		p.Weight,
		string(p.WeightType),
		p.DateOfBirth,
		string(p.ActivityLevel),
		p.PhotoURL,
	).Scan(&p.ID)
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, type, breed,
			weight, weight_type, date_of_birth, activity_level, photo_url
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, apperr.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, type, breed,
			weight, weight_type, date_of_birth, activity_level, photo_url
		FROM pets
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []pets.Pet{}
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = $2, type = $3, breed = $4,
			weight = $5, weight_type = $6,
			date_of_birth = $7, activity_level = $8, photo_url = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Type,
		p.Breed,
		p.Weight,
		string(p.WeightType),
		p.DateOfBirth,
		string(p.ActivityLevel),
		p.PhotoURL,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete relies on ON DELETE CASCADE for the pet's child records.
func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var weightType, activityLevel string
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Type,
		&p.Breed,
		&p.Weight,
		&weightType,
		&p.DateOfBirth,
		&activityLevel,
		&p.PhotoURL,
	); err != nil {
		return pets.Pet{}, err
	}
	p.WeightType = pets.WeightType(weightType)
	p.ActivityLevel = pets.ActivityLevel(activityLevel)
	return p, nil
}
