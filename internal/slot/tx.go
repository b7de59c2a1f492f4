package slot

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
)

// Version reads the concurrency token of an active definition inside q,
// taking a share lock so the row cannot change before q commits.
// ok is false when the definition is missing or inactive.
func Version(ctx context.Context, q sqlx.QueryerContext, id string) (version int, ok bool, err error) {
	var row struct {
		Version  int  `db:"version"`
		IsActive bool `db:"is_active"`
	}
	rows, err := q.QueryxContext(ctx, `SELECT version, is_active FROM time_slots WHERE id = $1 FOR SHARE`, id)
	if err != nil {
		return 0, false, db.Unavailable(err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, db.Unavailable(rows.Err())
	}
	if err := rows.StructScan(&row); err != nil {
		return 0, false, db.Unavailable(err)
	}
	return row.Version, row.IsActive, nil
}

// DeleteIfMatches removes definition id only if it still describes m.
func DeleteIfMatches(ctx context.Context, q sqlx.QueryerContext, id string, m Match) (bool, error) {
	query := `
		DELETE FROM time_slots
		WHERE id = $1 AND field_id = $2 AND start_time = $3 AND end_time = $4
		  AND (all_days OR date = $5)
		RETURNING id
	`

	var deleted []string
	if err := sqlx.SelectContext(ctx, q, &deleted, query, id, m.FacilityID, m.Window.Start, m.Window.End, m.Date); err != nil {
		return false, db.Unavailable(err)
	}
	return len(deleted) == 1, nil
}

// DeleteFirstMatching removes the oldest definition that matches m and
// reports how many matched before the delete.
func DeleteFirstMatching(ctx context.Context, q sqlx.ExtContext, m Match) (deletedID string, matches int, err error) {
	query := `
		SELECT id FROM time_slots
		WHERE field_id = $1 AND start_time = $2 AND end_time = $3 AND (all_days OR date = $4)
		ORDER BY created_at ASC, id ASC
		FOR UPDATE
	`

	var ids []string
	if err := sqlx.SelectContext(ctx, q, &ids, query, m.FacilityID, m.Window.Start, m.Window.End, m.Date); err != nil {
		return "", 0, db.Unavailable(err)
	}
	if len(ids) == 0 {
		return "", 0, nil
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM time_slots WHERE id = $1`, ids[0]); err != nil {
		return "", 0, db.Unavailable(err)
	}
	return ids[0], len(ids), nil
}
