package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) (medications.Medication, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO medications (
			pet_id, name, dosage_amount, dosage_unit,
			frequency, time_to_administer, start_date, end_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		m.PetID,
		m.Name,
		m.DosageAmount,
		m.DosageUnit,
		m.Frequency,
		m.TimeToAdminister,
		m.StartDate,
		toNullDate(m.EndDate),
	).Scan(&m.ID)
	if err != nil {
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id int64) (medications.Medication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, name, dosage_amount, dosage_unit,
			frequency, time_to_administer, start_date, end_date
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, apperr.ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByPet(ctx context.Context, petID int64) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, name, dosage_amount, dosage_unit,
			frequency, time_to_administer, start_date, end_date
		FROM medications
		WHERE pet_id = $1
		ORDER BY time_to_administer, id
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []medications.Medication{}
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = $2, dosage_amount = $3, dosage_unit = $4,
			frequency = $5, time_to_administer = $6,
			start_date = $7, end_date = $8
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.DosageAmount,
		m.DosageUnit,
		m.Frequency,
		m.TimeToAdminister,
		m.StartDate,
		toNullDate(m.EndDate),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *MedicationsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var end sql.NullTime
	if err := row.Scan(
		&m.ID,
		&m.PetID,
		&m.Name,
		&m.DosageAmount,
		&m.DosageUnit,
		&m.Frequency,
		&m.TimeToAdminister,
		&m.StartDate,
		&end,
	); err != nil {
		return medications.Medication{}, err
	}
	if end.Valid {
		t := end.Time
		m.EndDate = &t
	}
	return m, nil
}
