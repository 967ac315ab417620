package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"
)

// BookingQuery defines filters & pagination for listing bookings.
// Status and Date are optional; zero values mean no filter.  UserID
// or MerchantID scope the query depending on which listing is
// served.
type BookingQuery struct {
    UserID     uint64
    MerchantID uint64
    Status     string
    Date       *time.Time
    Page       int
    PageSize   int
}

// BookingRow is the denormalized listing shape: the booking plus
// the merchant, table and window attributes a client renders
// without further queries.
type BookingRow struct {
    ID               uint64  `json:"id"`
    MerchantID       uint64  `json:"merchant_id"`
    MerchantName     string  `json:"merchant_name"`
    TableID          uint64  `json:"table_id"`
    TableName        string  `json:"table_name"`
    WindowID         uint64  `json:"window_id"`
    WindowStart      string  `json:"window_start"`
    WindowEnd        string  `json:"window_end"`
    UserID           uint64  `json:"user_id"`
    Date             string  `json:"date"`
    PartySize        int     `json:"party_size"`
    ConfirmationCode string  `json:"confirmation_code"`
    Status           string  `json:"status"`
    Notes            *string `json:"notes,omitempty"`
    CreatedAt        string  `json:"created_at"`
}

// List returns one page of bookings matching the query along with
// the total match count.  Results are ordered by booking date
// descending, newest first within a date.
func (r *BookingRepo) List(ctx context.Context, q BookingQuery) ([]BookingRow, int64, error) {
    where := []string{}
    args := []any{}

    if q.UserID != 0 {
        where = append(where, "b.user_id = ?")
        args = append(args, q.UserID)
    }
    if q.MerchantID != 0 {
        where = append(where, "b.merchant_id = ?")
        args = append(args, q.MerchantID)
    }
    if q.Status != "" {
        where = append(where, "b.status = ?")
        args = append(args, strings.ToUpper(q.Status))
    }
    if q.Date != nil {
        where = append(where, "b.booking_date = ?")
        args = append(args, q.Date.Format(dateFmt))
    }
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    countSQL := `SELECT COUNT(*) FROM bookings b WHERE ` + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    limit := q.PageSize
    offset := (q.Page - 1) * q.PageSize

    // Tables and windows may be deleted once their bookings are terminal;
    // historical rows still list, with blank names for the missing side.
    dataSQL := `SELECT
            b.id, b.merchant_id, m.name,
            b.table_id, COALESCE(t.name, ''),
            b.window_id,
            COALESCE(TIME_FORMAT(w.start_time, '%H:%i'), ''),
            COALESCE(TIME_FORMAT(w.end_time, '%H:%i'), ''),
            b.user_id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'), b.party_size,
            b.confirmation_code, b.status, b.notes, b.created_at
        FROM bookings b
        JOIN merchants m ON m.id = b.merchant_id
        LEFT JOIN venue_tables t ON t.id = b.table_id
        LEFT JOIN schedule_windows w ON w.id = b.window_id
        WHERE ` + cond + `
        ORDER BY b.booking_date DESC, b.id DESC
        LIMIT ? OFFSET ?`
    rows, err := r.db.QueryContext(ctx, dataSQL, append(args, limit, offset)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]BookingRow, 0, limit)
    for rows.Next() {
        var (
            row       BookingRow
            notes     sql.NullString
            createdAt time.Time
        )
        if err := rows.Scan(&row.ID, &row.MerchantID, &row.MerchantName,
            &row.TableID, &row.TableName, &row.WindowID, &row.WindowStart, &row.WindowEnd,
            &row.UserID, &row.Date, &row.PartySize,
            &row.ConfirmationCode, &row.Status, &notes, &createdAt); err != nil {
            return nil, 0, err
        }
        if notes.Valid {
            v := notes.String
            row.Notes = &v
        }
        row.CreatedAt = createdAt.UTC().Format(time.RFC3339)
        out = append(out, row)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}
