package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// MerchantRepo provides data access to the merchants table.  Every
// merchant-scoped handler resolves the caller's merchant through
// this repository before touching inventory or bookings.
type MerchantRepo struct {
    db *sql.DB
}

// NewMerchantRepo returns a MerchantRepo bound to the given database.
func NewMerchantRepo(db *sql.DB) *MerchantRepo { return &MerchantRepo{db: db} }

// DB exposes the underlying handle so handlers can open
// transactions spanning multiple repositories.
func (r *MerchantRepo) DB() *sql.DB { return r.db }

const merchantCols = `id, owner_id, name, status, created_at, updated_at`

func scanMerchant(row *sql.Row) (*model.Merchant, error) {
    var m model.Merchant
    err := row.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Status, &m.CreatedAt, &m.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrMerchantNotFound
        }
        return nil, err
    }
    return &m, nil
}

// Create inserts a merchant for the given owner.  New merchants
// start APPROVED; suspension is an explicit administrative action
// taken outside this service.
func (r *MerchantRepo) Create(ctx context.Context, ownerID uint64, name string) (*model.Merchant, error) {
    const q = `INSERT INTO merchants (owner_id, name, status) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, ownerID, strings.TrimSpace(name), model.MerchantStatusApproved)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    return r.GetByID(ctx, uint64(id))
}

// GetByID retrieves a merchant regardless of owner.  It returns
// ErrMerchantNotFound when no row exists.
func (r *MerchantRepo) GetByID(ctx context.Context, id uint64) (*model.Merchant, error) {
    const q = `SELECT ` + merchantCols + ` FROM merchants WHERE id = ?`
    return scanMerchant(r.db.QueryRowContext(ctx, q, id))
}

// GetByOwner resolves the merchant managed by the given user.  Used
// by every merchant-scoped handler to turn the authenticated user
// into a merchant scope.
func (r *MerchantRepo) GetByOwner(ctx context.Context, ownerID uint64) (*model.Merchant, error) {
    const q = `SELECT ` + merchantCols + ` FROM merchants WHERE owner_id = ? LIMIT 1`
    return scanMerchant(r.db.QueryRowContext(ctx, q, ownerID))
}

// UpdateName renames the merchant owned by ownerID.  Returns
// ErrMerchantNotFound when the owner has no merchant.
func (r *MerchantRepo) UpdateName(ctx context.Context, ownerID uint64, name string) error {
    const q = `UPDATE merchants SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE owner_id = ?`
    res, err := r.db.ExecContext(ctx, q, strings.TrimSpace(name), ownerID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrMerchantNotFound
    }
    return nil
}
