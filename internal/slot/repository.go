package slot

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
)

const slotColumns = `id, field_id, start_time, end_time, price, day_of_week, all_days, date, is_active, version, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *SlotDefinition) (*SlotDefinition, error) {
	query := `
		INSERT INTO time_slots (id, field_id, start_time, end_time, price, day_of_week, all_days, date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + slotColumns

	var out SlotDefinition
	err := r.db.GetContext(ctx, &out, query,
		s.ID, s.FacilityID, s.StartTime, s.EndTime, s.Price, s.DayOfWeek, s.AllDays, s.Date, s.IsActive)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrSlotDuplicate
		}
		return nil, db.Unavailable(err)
	}

	return &out, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*SlotDefinition, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	var s SlotDefinition
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, db.Unavailable(err)
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]SlotDefinition, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.FacilityID != "" {
		where = append(where, "field_id = "+arg(f.FacilityID))
	}
	if f.Date != "" {
		where = append(where, "(all_days OR date = "+arg(f.Date)+")")
	}
	if f.ActiveOnly {
		where = append(where, "is_active")
	}

	query := `SELECT ` + slotColumns + ` FROM time_slots`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY start_time ASC, end_time ASC`

	slots := []SlotDefinition{}
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, db.Unavailable(err)
	}

	return slots, nil
}

func (r *repository) Update(ctx context.Context, s *SlotDefinition) (*SlotDefinition, error) {
	query := `
		UPDATE time_slots
		SET start_time = $1, end_time = $2, price = $3, day_of_week = $4, all_days = $5,
		    date = $6, is_active = $7, version = version + 1, updated_at = NOW()
		WHERE id = $8 AND version = $9
		RETURNING ` + slotColumns

	var out SlotDefinition
	err := r.db.GetContext(ctx, &out, query,
		s.StartTime, s.EndTime, s.Price, s.DayOfWeek, s.AllDays, s.Date, s.IsActive, s.ID, s.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, s.ID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrSlotModified
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrSlotDuplicate
		}
		return nil, db.Unavailable(err)
	}

	return &out, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return db.Unavailable(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return db.Unavailable(err)
	}
	if n == 0 {
		return ErrSlotNotFound
	}

	return nil
}
