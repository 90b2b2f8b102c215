package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/vetvisits"
)

type VetVisitsRepo struct {
	db *sql.DB
}

func NewVetVisitsRepo(db *sql.DB) *VetVisitsRepo {
	return &VetVisitsRepo{db: db}
}

func (r *VetVisitsRepo) Create(ctx context.Context, v vetvisits.VetVisit) (vetvisits.VetVisit, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO vet_visits (
			pet_id, visit_date, next_visit_date,
			vet_name, reason_for_visit, notes
		) VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		v.PetID,
		v.VisitDate,
		toNullDate(v.NextVisitDate),
		v.VetName,
		v.ReasonForVisit,
		v.Notes,
	).Scan(&v.ID)
	if err != nil {
		return vetvisits.VetVisit{}, err
	}
	return v, nil
}

func (r *VetVisitsRepo) GetByID(ctx context.Context, id int64) (vetvisits.VetVisit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, visit_date, next_visit_date,
			vet_name, reason_for_visit, notes
		FROM vet_visits
		WHERE id = $1
	`, id)

	v, err := scanVetVisit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vetvisits.VetVisit{}, apperr.ErrNotFound
		}
		return vetvisits.VetVisit{}, err
	}
	return v, nil
}

func (r *VetVisitsRepo) ListByPet(ctx context.Context, petID int64) ([]vetvisits.VetVisit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, visit_date, next_visit_date,
			vet_name, reason_for_visit, notes
		FROM vet_visits
		WHERE pet_id = $1
		ORDER BY visit_date, id
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []vetvisits.VetVisit{}
	for rows.Next() {
		v, err := scanVetVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VetVisitsRepo) Update(ctx context.Context, v vetvisits.VetVisit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vet_visits
		SET visit_date = $2, next_visit_date = $3,
			vet_name = $4, reason_for_visit = $5, notes = $6
		WHERE id = $1
	`,
		v.ID,
		v.VisitDate,
		toNullDate(v.NextVisitDate),
		v.VetName,
		v.ReasonForVisit,
		v.Notes,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *VetVisitsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vet_visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanVetVisit(row rowScanner) (vetvisits.VetVisit, error) {
	var v vetvisits.VetVisit
	var next sql.NullTime
	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.VisitDate,
		&next,
		&v.VetName,
		&v.ReasonForVisit,
		&v.Notes,
	); err != nil {
		return vetvisits.VetVisit{}, err
	}
	if next.Valid {
		t := next.Time
		v.NextVisitDate = &t
	}
	return v, nil
}

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
