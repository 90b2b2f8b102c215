package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/miguelocque/PetTrackr/internal/apperr"
	"github.com/miguelocque/PetTrackr/internal/domain/feedingschedules"
)

type FeedingSchedulesRepo struct {
	db *sql.DB
}

func NewFeedingSchedulesRepo(db *sql.DB) *FeedingSchedulesRepo {
	return &FeedingSchedulesRepo{db: db}
}

func (r *FeedingSchedulesRepo) Create(ctx context.Context, f feedingschedules.FeedingSchedule) (feedingschedules.FeedingSchedule, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO feeding_schedules (pet_id, feed_time, food_type, quantity, quantity_unit)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`,
		f.PetID,
		f.Time,
		f.FoodType,
		f.Quantity,
		string(f.QuantityUnit),
	).Scan(&f.ID)
	if err != nil {
		return feedingschedules.FeedingSchedule{}, err
	}
	return f, nil
}

func (r *FeedingSchedulesRepo) GetByID(ctx context.Context, id int64) (feedingschedules.FeedingSchedule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, feed_time, food_type, quantity, quantity_unit
		FROM feeding_schedules
		WHERE id = $1
	`, id)

	f, err := scanFeedingSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return feedingschedules.FeedingSchedule{}, apperr.ErrNotFound
		}
		return feedingschedules.FeedingSchedule{}, err
	}
	return f, nil
}

func (r *FeedingSchedulesRepo) ListByPet(ctx context.Context, petID int64) ([]feedingschedules.FeedingSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, feed_time, food_type, quantity, quantity_unit
		FROM feeding_schedules
		WHERE pet_id = $1
		ORDER BY feed_time, id
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []feedingschedules.FeedingSchedule{}
	for rows.Next() {
		f, err := scanFeedingSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FeedingSchedulesRepo) Update(ctx context.Context, f feedingschedules.FeedingSchedule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feeding_schedules
		SET feed_time = $2, food_type = $3, quantity = $4, quantity_unit = $5
		WHERE id = $1
	`,
		f.ID,
		f.Time,
		f.FoodType,
		f.Quantity,
		string(f.QuantityUnit),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *FeedingSchedulesRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feeding_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanFeedingSchedule(row rowScanner) (feedingschedules.FeedingSchedule, error) {
	var f feedingschedules.FeedingSchedule
	var unit string
	if err := row.Scan(
		&f.ID,
		&f.PetID,
		&f.Time,
		&f.FoodType,
		&f.Quantity,
		&unit,
	); err != nil {
		return feedingschedules.FeedingSchedule{}, err
	}
	f.QuantityUnit = feedingschedules.QuantityUnit(unit)
	return f, nil
}
