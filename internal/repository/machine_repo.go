package repository

import (
	"context"
	"database/sql"
	"strings"

	"smartmolding/internal/models"
)

type MachineSQLite struct {
	db *sql.DB
}

func NewMachineSQLite(db *sql.DB) *MachineSQLite { return &MachineSQLite{db: db} }

const (
	insertMachineSQL = `
		INSERT INTO machines (id, code, brand, type, capacity, area, status, downtime_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectMachineSQL = `
		SELECT id, code, brand, type, capacity, area, status, downtime_reason
		FROM machines WHERE id=?
	`

	setMachineStatusSQL = `
		UPDATE machines SET status=?, downtime_reason=? WHERE id=?
	`
)

// Seed inserts the catalog in one transaction. Meant for an empty table; the
// caller checks Count first.
func (r *MachineSQLite) Seed(ctx context.Context, machines []models.Machine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range machines {
		if _, err := tx.ExecContext(ctx, insertMachineSQL,
			m.ID, m.Code, m.Brand, m.Type, m.Capacity, m.Area, m.Status, nullableReason(m.CurrentDowntimeReason),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MachineSQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM machines`).Scan(&n)
	return n, err
}

// Get loads one machine; sql.ErrNoRows is passed through for unknown ids.
func (r *MachineSQLite) Get(ctx context.Context, id string) (models.Machine, error) {
	row := r.db.QueryRowContext(ctx, selectMachineSQL, id)
	return scanMachine(row.Scan)
}

// List returns machines ordered by rowid (catalog load order). area 0 means
// all areas.
func (r *MachineSQLite) List(ctx context.Context, area int) ([]models.Machine, error) {
	q := `SELECT id, code, brand, type, capacity, area, status, downtime_reason FROM machines`
	var args []any
	if area != 0 {
		q += ` WHERE area=?`
		args = append(args, area)
	}
	q += ` ORDER BY rowid ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Machine, 0, 64)
	for rows.Next() {
		m, err := scanMachine(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetStatus writes the status/reason pair. An empty reason is stored as NULL.
func (r *MachineSQLite) SetStatus(ctx context.Context, id, status, reason string) error {
	res, err := r.db.ExecContext(ctx, setMachineStatusSQL, status, nullableReason(reason), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateDetails applies descriptive-field edits only; status and reason are
// untouched.
func (r *MachineSQLite) UpdateDetails(ctx context.Context, id string, upd models.MachineUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.Code != nil {
		sets = append(sets, "code=?")
		args = append(args, *upd.Code)
	}
	if upd.Brand != nil {
		sets = append(sets, "brand=?")
		args = append(args, *upd.Brand)
	}
	if upd.Type != nil {
		sets = append(sets, "type=?")
		args = append(args, *upd.Type)
	}
	if upd.Capacity != nil {
		sets = append(sets, "capacity=?")
		args = append(args, *upd.Capacity)
	}
	if upd.Area != nil {
		sets = append(sets, "area=?")
		args = append(args, *upd.Area)
	}
	if len(sets) == 0 {
		// Nothing to change, but the id must still exist.
		_, err := r.Get(ctx, id)
		return err
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE machines SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanMachine(scan func(dest ...any) error) (models.Machine, error) {
	var (
		m      models.Machine
		reason sql.NullString
	)
	if err := scan(&m.ID, &m.Code, &m.Brand, &m.Type, &m.Capacity, &m.Area, &m.Status, &reason); err != nil {
		return models.Machine{}, err
	}
	if reason.Valid {
		m.CurrentDowntimeReason = reason.String
	}
	return m, nil
}

func nullableReason(reason string) any {
	if reason == "" {
		return nil
	}
	return reason
}

// requireRow maps "zero rows touched" onto sql.ErrNoRows so callers can treat
// a missing id uniformly across reads and writes.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
