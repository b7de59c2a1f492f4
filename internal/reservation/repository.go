package reservation

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

const reservationColumns = `id, user_id, field_id, slot_definition_id, date, start_time, end_time, total_price, status, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateIfAvailable(ctx context.Context, a Approval) (*Reservation, error) {
	res := a.Reservation

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, db.Unavailable(err)
	}
	defer tx.Rollback()

	// Shared with other creates, exclusive against confirmations of the same day.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock_shared(hashtext($1))`, dayLockKey(res.FacilityID, res.Date)); err != nil {
		return nil, db.Unavailable(err)
	}

	if a.Token.SlotDefinitionID != "" {
		version, ok, err := slot.Version(ctx, tx, a.Token.SlotDefinitionID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSlotUnavailable
		}
		if version != a.Token.SlotVersion {
			return nil, ErrApprovalStale
		}
	}

	overlap, err := confirmedOverlap(ctx, tx, res)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrSlotUnavailable
	}

	query := `
		INSERT INTO reservations (id, user_id, field_id, slot_definition_id, date, start_time, end_time, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + reservationColumns

	var out Reservation
	err = tx.GetContext(ctx, &out, query,
		res.ID, res.RequesterID, res.FacilityID, res.SlotDefinitionID, res.Date, res.StartTime, res.EndTime, res.TotalPrice, string(res.Status))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDuplicateReservation
		}
		return nil, db.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, db.Unavailable(err)
	}
	return &out, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return getByID(ctx, r.db, id, false)
}

func (r *repository) List(ctx context.Context, f Filter) ([]Reservation, error) {
	var (
		where []string
		args  []interface{}
	)
	add := func(column string, v interface{}) {
		args = append(args, v)
		where = append(where, column+" = $"+strconv.Itoa(len(args)))
	}

	if f.RequesterID != "" {
		add("user_id", f.RequesterID)
	}
	if f.FacilityID != "" {
		add("field_id", f.FacilityID)
	}
	if f.Date != "" {
		add("date", f.Date)
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date ASC, start_time ASC, created_at ASC`

	out := []Reservation{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, db.Unavailable(err)
	}
	return out, nil
}

func (r *repository) TransitionStatus(ctx context.Context, id string, from, to Status) (*Reservation, error) {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + reservationColumns

	var out Reservation
	err := r.db.GetContext(ctx, &out, query, string(to), id, string(from))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrStatusConflict
		}
		return nil, db.Unavailable(err)
	}
	return &out, nil
}

func (r *repository) Confirm(ctx context.Context, id string) (*ConfirmOutcome, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, db.Unavailable(err)
	}
	defer tx.Rollback()

	cur, err := getByID(ctx, tx, id, false)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, dayLockKey(cur.FacilityID, cur.Date)); err != nil {
		return nil, db.Unavailable(err)
	}

	cur, err = getByID(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if cur.Status != StatusPending {
		return nil, ErrStatusConflict
	}

	outcome := &ConfirmOutcome{Legacy: cur.SlotDefinitionID == ""}
	if outcome.Legacy {
		outcome.DeletedSlotID, outcome.Matches, err = slot.DeleteFirstMatching(ctx, tx, cur.SlotMatch())
		if err != nil {
			return nil, err
		}
	} else {
		ok, err := slot.DeleteIfMatches(ctx, tx, cur.SlotDefinitionID, cur.SlotMatch())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrSlotDefinitionNotFoundOnConfirm
		}
		outcome.DeletedSlotID = cur.SlotDefinitionID
	}

	overlap, err := confirmedOverlap(ctx, tx, *cur)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrSlotUnavailable
	}

	query := `
		UPDATE reservations
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + reservationColumns

	if err := tx.GetContext(ctx, &outcome.Reservation, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatusConflict
		}
		return nil, db.Unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, db.Unavailable(err)
	}
	return outcome, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return db.Unavailable(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return db.Unavailable(err)
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func getByID(ctx context.Context, q sqlx.QueryerContext, id string, forUpdate bool) (*Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var out Reservation
	if err := sqlx.GetContext(ctx, q, &out, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, db.Unavailable(err)
	}
	return &out, nil
}

func confirmedOverlap(ctx context.Context, q sqlx.QueryerContext, res Reservation) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE field_id = $1 AND date = $2 AND status = 'confirmed' AND id <> $3
			  AND start_time < $4 AND end_time > $5
		)
	`

	var exists bool
	if err := sqlx.GetContext(ctx, q, &exists, query, res.FacilityID, res.Date, res.ID, res.EndTime, res.StartTime); err != nil {
		return false, db.Unavailable(err)
	}
	return exists, nil
}

func dayLockKey(facilityID, date string) string {
	return "reservations:" + facilityID + ":" + date
}
