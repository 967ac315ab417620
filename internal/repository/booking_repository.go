package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// BookingRepo provides data access to the bookings table and owns
// the capacity-enforcement point of the whole service: Reserve runs
// the per-slot count and the insert inside a single transaction so
// that concurrent creation attempts cannot both observe a free
// slot.  All timestamp fields are stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open
// transactions spanning multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingCols = `id, merchant_id, table_id, window_id, user_id, booking_date, party_size,
                     contact_name, contact_phone, notes, confirmation_code, status,
                     confirmed_at, cancelled_at, cancelled_by, created_at, updated_at`

const dateFmt = "2006-01-02"

func scanBookingRow(scan func(dest ...any) error) (*model.Booking, error) {
    var (
        b            model.Booking
        contactName  sql.NullString
        contactPhone sql.NullString
        notes        sql.NullString
        confirmedAt  sql.NullTime
        cancelledAt  sql.NullTime
        cancelledBy  sql.NullInt64
    )
    err := scan(&b.ID, &b.MerchantID, &b.TableID, &b.WindowID, &b.UserID, &b.Date, &b.PartySize,
        &contactName, &contactPhone, &notes, &b.ConfirmationCode, &b.Status,
        &confirmedAt, &cancelledAt, &cancelledBy, &b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if contactName.Valid {
        v := contactName.String
        b.ContactName = &v
    }
    if contactPhone.Valid {
        v := contactPhone.String
        b.ContactPhone = &v
    }
    if notes.Valid {
        v := notes.String
        b.Notes = &v
    }
    if confirmedAt.Valid {
        v := confirmedAt.Time
        b.ConfirmedAt = &v
    }
    if cancelledAt.Valid {
        v := cancelledAt.Time
        b.CancelledAt = &v
    }
    if cancelledBy.Valid {
        v := uint64(cancelledBy.Int64)
        b.CancelledBy = &v
    }
    return &b, nil
}

// CountActive returns the number of non-terminal bookings holding
// the (table, window, date) slot.  This read-only form feeds the
// availability engine; Reserve re-runs the same count under a row
// lock before inserting.
func (r *BookingRepo) CountActive(ctx context.Context, tableID, windowID uint64, date time.Time) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings
               WHERE table_id = ? AND window_id = ? AND booking_date = ?
                 AND status IN ('PENDING','CONFIRMED')`
    var n int
    err := r.db.QueryRowContext(ctx, q, tableID, windowID, date.Format(dateFmt)).Scan(&n)
    return n, err
}

// countActiveLocked is the locking variant used inside Reserve.
// FOR UPDATE takes next-key locks on the matching index range, so a
// concurrent insert into the same slot blocks until this
// transaction commits or rolls back.
func countActiveLocked(ctx context.Context, tx *sql.Tx, tableID, windowID uint64, date time.Time) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings
               WHERE table_id = ? AND window_id = ? AND booking_date = ?
                 AND status IN ('PENDING','CONFIRMED') FOR UPDATE`
    var n int
    err := tx.QueryRowContext(ctx, q, tableID, windowID, date.Format(dateFmt)).Scan(&n)
    return n, err
}

// isDuplicateCode reports whether err is the MySQL duplicate-key
// error (1062).  The confirmation code index is the only unique
// constraint on the bookings table.
func isDuplicateCode(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}

// isRetryableConflict reports whether err is a MySQL deadlock (1213)
// or lock wait timeout (1205).  Two transactions racing to insert the
// first booking of an empty slot both hold the same gap lock from the
// count, so InnoDB kills one; rerunning it succeeds.
func isRetryableConflict(err error) bool {
    var me *mysql.MySQLError
    if !errors.As(err, &me) {
        return false
    }
    return me.Number == 1213 || me.Number == 1205
}

// maxReserveAttempts bounds how often a reservation transaction is
// rerun after a deadlock before the failure surfaces.
const maxReserveAttempts = 3

// Reserve atomically checks capacity for the booking's
// (table, window, date) slot and inserts the row.  It returns
// ErrCapacityExceeded when the slot already holds windowCap active
// bookings.  The confirmation code is generated here and retried on
// a unique-index collision up to booking.MaxCodeAttempts times;
// exhaustion surfaces booking.ErrCodeExhausted, which handlers
// treat as a server failure.  The whole count-then-insert
// transaction is rerun on a deadlock or lock wait timeout.  On
// success the booking is populated with its ID, code and timestamps.
func (r *BookingRepo) Reserve(ctx context.Context, b *model.Booking, windowCap int) error {
    var err error
    for attempt := 0; attempt < maxReserveAttempts; attempt++ {
        err = r.reserveOnce(ctx, b, windowCap)
        if !isRetryableConflict(err) {
            return err
        }
    }
    return err
}

func (r *BookingRepo) reserveOnce(ctx context.Context, b *model.Booking, windowCap int) error {
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

    n, err := countActiveLocked(ctx, tx, b.TableID, b.WindowID, b.Date)
    if err != nil {
        return err
    }
    if n >= windowCap {
        return ErrCapacityExceeded
    }

    const ins = `INSERT INTO bookings
                 (merchant_id, table_id, window_id, user_id, booking_date, party_size,
                  contact_name, contact_phone, notes, confirmation_code, status, confirmed_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    var confirmedAt any
    if b.ConfirmedAt != nil {
        confirmedAt = b.ConfirmedAt.UTC()
    }
    var inserted bool
    for attempt := 0; attempt < booking.MaxCodeAttempts; attempt++ {
        code, err := booking.NewConfirmationCode()
        if err != nil {
            return err
        }
        res, err := tx.ExecContext(ctx, ins, b.MerchantID, b.TableID, b.WindowID, b.UserID,
            b.Date.Format(dateFmt), b.PartySize, b.ContactName, b.ContactPhone, b.Notes,
            code, b.Status, confirmedAt)
        if err != nil {
            if isDuplicateCode(err) {
                continue
            }
            return err
        }
        id, err := res.LastInsertId()
        if err != nil {
            return err
        }
        b.ID = uint64(id)
        b.ConfirmationCode = code
        inserted = true
        break
    }
    if !inserted {
        return booking.ErrCodeExhausted
    }

    const sel = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
    got, err := scanBookingRow(tx.QueryRowContext(ctx, sel, b.ID).Scan)
    if err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    *b = *got
    return nil
}

// GetByID retrieves a booking by primary key.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
    b, err := scanBookingRow(r.db.QueryRowContext(ctx, q, id).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    return b, err
}

// GetByCode retrieves a booking by its public confirmation code.
func (r *BookingRepo) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
    const q = `SELECT ` + bookingCols + ` FROM bookings WHERE confirmation_code = ?`
    b, err := scanBookingRow(r.db.QueryRowContext(ctx, q, code).Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    return b, err
}

// UpdateUserEditable writes the fields a user may change after
// creation: party size, notes and contact details.  Table, window
// and date are immutable once booked, so they never appear here.
func (r *BookingRepo) UpdateUserEditable(ctx context.Context, b *model.Booking) error {
    const q = `UPDATE bookings
               SET party_size = ?, contact_name = ?, contact_phone = ?, notes = ?,
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, b.PartySize, b.ContactName, b.ContactPhone, b.Notes, b.ID)
    return err
}

// Cancel marks a booking CANCELLED with a conditional write: the
// row is only updated while its status is still non-terminal, so a
// concurrent cancellation or completion loses cleanly.  A zero row
// count means the booking was already in a terminal state.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, cancelledBy uint64) error {
    const q = `UPDATE bookings
               SET status = 'CANCELLED', cancelled_at = UTC_TIMESTAMP(), cancelled_by = ?,
                   updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND status IN ('PENDING','CONFIRMED')`
    res, err := r.db.ExecContext(ctx, q, cancelledBy, bookingID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return booking.ErrBadTransition
    }
    return nil
}

// SetStatus performs a merchant-side transition with compare-and-
// swap semantics: the update only applies while the booking is
// still in the observed `from` state.  Transition legality is
// validated by the caller against the state machine; the CAS here
// closes the race with a concurrent transition.  Moving to
// CONFIRMED stamps confirmed_at when not already set.
func (r *BookingRepo) SetStatus(ctx context.Context, bookingID uint64, from, to booking.Status) error {
    var q string
    if to == booking.StatusConfirmed {
        q = `UPDATE bookings
             SET status = ?, confirmed_at = COALESCE(confirmed_at, UTC_TIMESTAMP()),
                 updated_at = CURRENT_TIMESTAMP
             WHERE id = ? AND status = ?`
    } else {
        q = `UPDATE bookings
             SET status = ?, updated_at = CURRENT_TIMESTAMP
             WHERE id = ? AND status = ?`
    }
    res, err := r.db.ExecContext(ctx, q, string(to), bookingID, string(from))
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return booking.ErrBadTransition
    }
    return nil
}
