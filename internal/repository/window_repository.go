package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// WindowRepo provides CRUD operations over schedule_windows, the
// recurring weekly availability windows of a merchant.
type WindowRepo struct {
    db *sql.DB
}

// NewWindowRepo returns a WindowRepo bound to the given database.
func NewWindowRepo(db *sql.DB) *WindowRepo { return &WindowRepo{db: db} }

const windowCols = `id, merchant_id, day_of_week, TIME_FORMAT(start_time, '%H:%i:%s'),
                    TIME_FORMAT(end_time, '%H:%i:%s'), duration_min, concurrency_cap,
                    is_active, created_at, updated_at`

func scanWindowRow(scan func(dest ...any) error) (*model.WindowSchedule, error) {
    var w model.WindowSchedule
    err := scan(&w.ID, &w.MerchantID, &w.DayOfWeek, &w.StartTime, &w.EndTime,
        &w.DurationMin, &w.ConcurrencyCap, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &w, nil
}

// Create inserts a window and reads the row back.  Validation of
// day/duration/cap bounds and start < end happens in the handler
// before this is called; the schema enforces them again.
func (r *WindowRepo) Create(ctx context.Context, w *model.WindowSchedule) error {
    const q = `INSERT INTO schedule_windows
               (merchant_id, day_of_week, start_time, end_time, duration_min, concurrency_cap, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, w.MerchantID, w.DayOfWeek, w.StartTime, w.EndTime,
        w.DurationMin, w.ConcurrencyCap, w.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    w.ID = uint64(id)
    const sel = `SELECT ` + windowCols + ` FROM schedule_windows WHERE id = ?`
    got, err := scanWindowRow(r.db.QueryRowContext(ctx, sel, w.ID).Scan)
    if err != nil {
        return err
    }
    *w = *got
    return nil
}

// GetByID retrieves a window regardless of merchant.
func (r *WindowRepo) GetByID(ctx context.Context, id uint64) (*model.WindowSchedule, error) {
    const q = `SELECT ` + windowCols + ` FROM schedule_windows WHERE id = ?`
    w, err := scanWindowRow(r.db.QueryRowContext(ctx, q, id).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrWindowNotFound
    }
    return w, err
}

// GetByIDAndMerchant retrieves a window only when it belongs to the
// given merchant, surfacing ErrWindowNotFound otherwise.
func (r *WindowRepo) GetByIDAndMerchant(ctx context.Context, id, merchantID uint64) (*model.WindowSchedule, error) {
    const q = `SELECT ` + windowCols + ` FROM schedule_windows WHERE id = ? AND merchant_id = ?`
    w, err := scanWindowRow(r.db.QueryRowContext(ctx, q, id, merchantID).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrWindowNotFound
    }
    return w, err
}

// ListByMerchant returns a merchant's windows ordered by weekday
// then start time.  When day is non-nil the list is filtered to
// that weekday.
func (r *WindowRepo) ListByMerchant(ctx context.Context, merchantID uint64, day *int) ([]model.WindowSchedule, error) {
    q := `SELECT ` + windowCols + ` FROM schedule_windows WHERE merchant_id = ?`
    args := []any{merchantID}
    if day != nil {
        q += ` AND day_of_week = ?`
        args = append(args, *day)
    }
    q += ` ORDER BY day_of_week, start_time, id`
    return r.list(ctx, q, args...)
}

// ListActiveByDay returns the merchant's active windows recurring
// on the given weekday, ordered by start time.  This is the window
// set consumed by the availability engine.
func (r *WindowRepo) ListActiveByDay(ctx context.Context, merchantID uint64, dayOfWeek int) ([]model.WindowSchedule, error) {
    const q = `SELECT ` + windowCols + ` FROM schedule_windows
               WHERE merchant_id = ? AND day_of_week = ? AND is_active = TRUE
               ORDER BY start_time, id`
    return r.list(ctx, q, merchantID, dayOfWeek)
}

func (r *WindowRepo) list(ctx context.Context, q string, args ...any) ([]model.WindowSchedule, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.WindowSchedule, 0)
    for rows.Next() {
        w, err := scanWindowRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *w)
    }
    return out, rows.Err()
}

// Update writes every mutable column for a window owned by the
// merchant.  Returns ErrWindowNotFound when no row matches.
func (r *WindowRepo) Update(ctx context.Context, w *model.WindowSchedule) error {
    const q = `UPDATE schedule_windows
               SET day_of_week = ?, start_time = ?, end_time = ?, duration_min = ?,
                   concurrency_cap = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND merchant_id = ?`
    res, err := r.db.ExecContext(ctx, q, w.DayOfWeek, w.StartTime, w.EndTime, w.DurationMin,
        w.ConcurrencyCap, w.IsActive, w.ID, w.MerchantID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrWindowNotFound
    }
    return nil
}

// Delete removes a window unless non-terminal bookings still
// reference it.  Mirrors TableRepo.Delete: ownership check and
// dependency count share one transaction.
func (r *WindowRepo) Delete(ctx context.Context, id, merchantID uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var found uint64
    const check = `SELECT id FROM schedule_windows WHERE id = ? AND merchant_id = ? FOR UPDATE`
    if err := tx.QueryRowContext(ctx, check, id, merchantID).Scan(&found); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrWindowNotFound
        }
        return err
    }
    var live int
    const inUse = `SELECT COUNT(*) FROM bookings WHERE window_id = ? AND status IN ('PENDING','CONFIRMED')`
    if err := tx.QueryRowContext(ctx, inUse, id).Scan(&live); err != nil {
        return err
    }
    if live > 0 {
        return ErrResourceInUse
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_windows WHERE id = ?`, id); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
