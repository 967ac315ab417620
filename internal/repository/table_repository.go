package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// TableRepo provides CRUD operations over venue_tables.  All
// mutating methods are scoped by merchant ID; a lookup for a table
// owned by another merchant yields ErrTableNotFound.
type TableRepo struct {
    db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableCols = `id, merchant_id, name, capacity, features, status, created_at, updated_at`

func scanTableRow(scan func(dest ...any) error) (*model.Table, error) {
    var t model.Table
    err := scan(&t.ID, &t.MerchantID, &t.Name, &t.Capacity, &t.Features, &t.Status, &t.CreatedAt, &t.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// Create inserts a table and reads the row back so timestamps and
// defaults are populated.  New tables start AVAILABLE.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
    const q = `INSERT INTO venue_tables (merchant_id, name, capacity, features, status)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, t.MerchantID, t.Name, t.Capacity, t.Features, model.TableStatusAvailable)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    const sel = `SELECT ` + tableCols + ` FROM venue_tables WHERE id = ?`
    got, err := scanTableRow(r.db.QueryRowContext(ctx, sel, t.ID).Scan)
    if err != nil {
        return err
    }
    *t = *got
    return nil
}

// GetByID retrieves a table regardless of merchant.  Booking
// creation uses this form and compares merchants itself to detect
// mixed references.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
    const q = `SELECT ` + tableCols + ` FROM venue_tables WHERE id = ?`
    t, err := scanTableRow(r.db.QueryRowContext(ctx, q, id).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTableNotFound
    }
    return t, err
}

// GetByIDAndMerchant retrieves a table only when it belongs to the
// given merchant.  Cross-merchant lookups come back as
// ErrTableNotFound so resource existence does not leak.
func (r *TableRepo) GetByIDAndMerchant(ctx context.Context, id, merchantID uint64) (*model.Table, error) {
    const q = `SELECT ` + tableCols + ` FROM venue_tables WHERE id = ? AND merchant_id = ?`
    t, err := scanTableRow(r.db.QueryRowContext(ctx, q, id, merchantID).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTableNotFound
    }
    return t, err
}

// ListByMerchant returns all of a merchant's tables ordered by
// ascending capacity then ID for deterministic output.
func (r *TableRepo) ListByMerchant(ctx context.Context, merchantID uint64) ([]model.Table, error) {
    const q = `SELECT ` + tableCols + ` FROM venue_tables WHERE merchant_id = ? ORDER BY capacity, id`
    rows, err := r.db.QueryContext(ctx, q, merchantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Table, 0)
    for rows.Next() {
        t, err := scanTableRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *t)
    }
    return out, rows.Err()
}

// ListAvailable returns the merchant's AVAILABLE tables seating at
// least minCapacity guests, smallest first.  This is the candidate
// set consumed by the availability engine.
func (r *TableRepo) ListAvailable(ctx context.Context, merchantID uint64, minCapacity int) ([]model.Table, error) {
    const q = `SELECT ` + tableCols + ` FROM venue_tables
               WHERE merchant_id = ? AND status = ? AND capacity >= ?
               ORDER BY capacity, id`
    rows, err := r.db.QueryContext(ctx, q, merchantID, model.TableStatusAvailable, minCapacity)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Table, 0)
    for rows.Next() {
        t, err := scanTableRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *t)
    }
    return out, rows.Err()
}

// Update writes name, capacity, features and status for a table
// owned by the merchant.  Returns ErrTableNotFound when the table
// does not exist under that merchant.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
    const q = `UPDATE venue_tables
               SET name = ?, capacity = ?, features = ?, status = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND merchant_id = ?`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.Capacity, t.Features, t.Status, t.ID, t.MerchantID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrTableNotFound
    }
    return nil
}

// Delete removes a table unless non-terminal bookings still
// reference it, in which case ErrResourceInUse is returned.  The
// existence check and the dependency check run inside one
// transaction so a concurrent booking cannot slip between them.
func (r *TableRepo) Delete(ctx context.Context, id, merchantID uint64) error {
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
    const check = `SELECT id FROM venue_tables WHERE id = ? AND merchant_id = ? FOR UPDATE`
    if err := tx.QueryRowContext(ctx, check, id, merchantID).Scan(&found); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrTableNotFound
        }
        return err
    }
    var live int
    const inUse = `SELECT COUNT(*) FROM bookings WHERE table_id = ? AND status IN ('PENDING','CONFIRMED')`
    if err := tx.QueryRowContext(ctx, inUse, id).Scan(&live); err != nil {
        return err
    }
    if live > 0 {
        return ErrResourceInUse
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM venue_tables WHERE id = ?`, id); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
