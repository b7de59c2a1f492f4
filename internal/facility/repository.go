package facility

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Facility) (*Facility, error) {
	query := `
		INSERT INTO facilities (id, name, sport_id, description, price_per_hour)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, sport_id, description, price_per_hour, created_at
	`

	var out Facility
	err := r.db.GetContext(ctx, &out, query, f.ID, f.Name, f.SportID, f.Description, f.PricePerHour)
	if err != nil {
		return nil, db.Unavailable(err)
	}

	return &out, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Facility, error) {
	query := `
		SELECT id, name, sport_id, description, price_per_hour, created_at
		FROM facilities
		ORDER BY name ASC
	`

	var facilities []Facility
	if err := r.db.SelectContext(ctx, &facilities, query); err != nil {
		return nil, db.Unavailable(err)
	}

	return facilities, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Facility, error) {
	query := `
		SELECT id, name, sport_id, description, price_per_hour, created_at
		FROM facilities
		WHERE id = $1
	`

	var f Facility
	err := r.db.GetContext(ctx, &f, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, db.Unavailable(err)
	}

	return &f, nil
}
