package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// PolicyRepo provides access to booking_policies.  There is exactly
// one policy row per merchant; it is created lazily with defaults
// on first access and only ever updated afterwards.
type PolicyRepo struct {
    db *sql.DB
}

// NewPolicyRepo returns a PolicyRepo bound to the given database.
func NewPolicyRepo(db *sql.DB) *PolicyRepo { return &PolicyRepo{db: db} }

const policyCols = `merchant_id, advance_booking_days, min_party_size, max_party_size,
                    default_duration_min, require_confirmation, allow_modifications,
                    allow_cancellations, cancellation_hours, auto_confirm, reminder_hours,
                    created_at, updated_at`

func scanPolicy(scan func(dest ...any) error) (*model.BookingPolicy, error) {
    var p model.BookingPolicy
    err := scan(&p.MerchantID, &p.AdvanceBookingDays, &p.MinPartySize, &p.MaxPartySize,
        &p.DefaultDurationMin, &p.RequireConfirmation, &p.AllowModifications,
        &p.AllowCancellations, &p.CancellationHours, &p.AutoConfirm, &p.ReminderHours,
        &p.CreatedAt, &p.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// GetOrCreate returns the merchant's policy, inserting the default
// row on first access.  The insert uses INSERT IGNORE so two
// concurrent first accesses cannot race into a duplicate-key error;
// whichever loses the race simply reads the winner's row.
func (r *PolicyRepo) GetOrCreate(ctx context.Context, merchantID uint64) (*model.BookingPolicy, error) {
    p, err := r.get(ctx, merchantID)
    if err == nil {
        return p, nil
    }
    if !errors.Is(err, sql.ErrNoRows) {
        return nil, err
    }
    def := model.DefaultBookingPolicy(merchantID)
    const ins = `INSERT IGNORE INTO booking_policies
                 (merchant_id, advance_booking_days, min_party_size, max_party_size,
                  default_duration_min, require_confirmation, allow_modifications,
                  allow_cancellations, cancellation_hours, auto_confirm, reminder_hours)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    if _, err := r.db.ExecContext(ctx, ins, def.MerchantID, def.AdvanceBookingDays,
        def.MinPartySize, def.MaxPartySize, def.DefaultDurationMin, def.RequireConfirmation,
        def.AllowModifications, def.AllowCancellations, def.CancellationHours,
        def.AutoConfirm, def.ReminderHours); err != nil {
        return nil, err
    }
    return r.get(ctx, merchantID)
}

func (r *PolicyRepo) get(ctx context.Context, merchantID uint64) (*model.BookingPolicy, error) {
    const q = `SELECT ` + policyCols + ` FROM booking_policies WHERE merchant_id = ?`
    return scanPolicy(r.db.QueryRowContext(ctx, q, merchantID).Scan)
}

// Update writes the full policy row.  Merge semantics for partial
// updates live in the handler: it loads the current policy via
// GetOrCreate, overlays the supplied fields and saves the result.
func (r *PolicyRepo) Update(ctx context.Context, p *model.BookingPolicy) error {
    const q = `UPDATE booking_policies
               SET advance_booking_days = ?, min_party_size = ?, max_party_size = ?,
                   default_duration_min = ?, require_confirmation = ?, allow_modifications = ?,
                   allow_cancellations = ?, cancellation_hours = ?, auto_confirm = ?,
                   reminder_hours = ?, updated_at = CURRENT_TIMESTAMP
               WHERE merchant_id = ?`
    res, err := r.db.ExecContext(ctx, q, p.AdvanceBookingDays, p.MinPartySize, p.MaxPartySize,
        p.DefaultDurationMin, p.RequireConfirmation, p.AllowModifications, p.AllowCancellations,
        p.CancellationHours, p.AutoConfirm, p.ReminderHours, p.MerchantID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // Timestamps only advance when a column actually changes, so
        // RowsAffected can be zero for a no-op update; verify the row
        // exists before treating this as missing.
        if _, err := r.get(ctx, p.MerchantID); errors.Is(err, sql.ErrNoRows) {
            return ErrMerchantNotFound
        } else if err != nil {
            return err
        }
    }
    return nil
}
