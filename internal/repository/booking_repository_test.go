package repository

import (
    "context"
    "testing"
    "time"

    sqlmock "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/model"
)

func newMockBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewBookingRepo(db), mock
}

func pendingBooking() *model.Booking {
    return &model.Booking{
        MerchantID: 1,
        TableID:    3,
        WindowID:   5,
        UserID:     9,
        Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
        PartySize:  4,
        Status:     string(booking.StatusPending),
    }
}

func slotCount(n int) *sqlmock.Rows {
    return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(n)
}

// bookingReadBack builds the row Reserve selects after a successful
// insert, in bookingCols order.
func bookingReadBack(id uint64, code string) *sqlmock.Rows {
    now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
    return sqlmock.NewRows([]string{
        "id", "merchant_id", "table_id", "window_id", "user_id", "booking_date", "party_size",
        "contact_name", "contact_phone", "notes", "confirmation_code", "status",
        "confirmed_at", "cancelled_at", "cancelled_by", "created_at", "updated_at",
    }).AddRow(id, 1, 3, 5, 9, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 4,
        nil, nil, nil, code, "PENDING", nil, nil, nil, now, now)
}

func TestReserveCapacityExceeded(t *testing.T) {
    repo, mock := newMockBookingRepo(t)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
        WithArgs(uint64(3), uint64(5), "2025-06-02").
        WillReturnRows(slotCount(2))
    mock.ExpectRollback()

    err := repo.Reserve(context.Background(), pendingBooking(), 2)
    assert.ErrorIs(t, err, ErrCapacityExceeded)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRetriesDuplicateCode(t *testing.T) {
    repo, mock := newMockBookingRepo(t)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).WillReturnRows(slotCount(0))
    // Codes are random, so no argument match: the first insert hits
    // the unique index, the second lands.
    mock.ExpectExec(`INSERT INTO bookings`).
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
    mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectQuery(`SELECT id, merchant_id`).WithArgs(uint64(7)).
        WillReturnRows(bookingReadBack(7, "ABCD2345"))
    mock.ExpectCommit()

    b := pendingBooking()
    err := repo.Reserve(context.Background(), b, 2)
    require.NoError(t, err)
    assert.Equal(t, uint64(7), b.ID)
    assert.Equal(t, "ABCD2345", b.ConfirmationCode)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveCodeExhausted(t *testing.T) {
    repo, mock := newMockBookingRepo(t)

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).WillReturnRows(slotCount(0))
    for i := 0; i < booking.MaxCodeAttempts; i++ {
        mock.ExpectExec(`INSERT INTO bookings`).
            WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
    }
    mock.ExpectRollback()

    err := repo.Reserve(context.Background(), pendingBooking(), 2)
    assert.ErrorIs(t, err, booking.ErrCodeExhausted)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRetriesAfterDeadlock(t *testing.T) {
    repo, mock := newMockBookingRepo(t)

    // Two clients racing to book an empty slot both acquire the gap
    // lock from the count; InnoDB kills one insert with 1213.  The
    // whole transaction reruns and goes through the second time.
    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).WillReturnRows(slotCount(0))
    mock.ExpectExec(`INSERT INTO bookings`).
        WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
    mock.ExpectRollback()

    mock.ExpectBegin()
    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).WillReturnRows(slotCount(1))
    mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(9, 1))
    mock.ExpectQuery(`SELECT id, merchant_id`).WithArgs(uint64(9)).
        WillReturnRows(bookingReadBack(9, "ZXCV2345"))
    mock.ExpectCommit()

    b := pendingBooking()
    err := repo.Reserve(context.Background(), b, 2)
    require.NoError(t, err)
    assert.Equal(t, uint64(9), b.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveDeadlockGivesUp(t *testing.T) {
    repo, mock := newMockBookingRepo(t)

    for i := 0; i < maxReserveAttempts; i++ {
        mock.ExpectBegin()
        mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).WillReturnRows(slotCount(0))
        mock.ExpectExec(`INSERT INTO bookings`).
            WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
        mock.ExpectRollback()
    }

    err := repo.Reserve(context.Background(), pendingBooking(), 2)
    var me *mysql.MySQLError
    require.ErrorAs(t, err, &me)
    assert.Equal(t, uint16(1213), me.Number)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListKeepsBookingsOfDeletedResources(t *testing.T) {
    repo, mock := newMockBookingRepo(t)

    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings b`).
        WithArgs(uint64(9)).
        WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
    // Table and window rows are gone; the left joins yield blanks
    // instead of dropping the booking from the history.
    mock.ExpectQuery(`LEFT JOIN venue_tables`).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "merchant_id", "m.name", "table_id", "t.name", "window_id",
            "start", "end", "user_id", "date", "party_size",
            "confirmation_code", "status", "notes", "created_at",
        }).AddRow(11, 1, "Trattoria", 3, "", 5, "", "", 9, "2025-06-02", 4,
            "QWER2345", "COMPLETED", nil, time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)))

    rows, total, err := repo.List(context.Background(), BookingQuery{UserID: 9, Page: 1, PageSize: 20})
    require.NoError(t, err)
    assert.Equal(t, int64(1), total)
    require.Len(t, rows, 1)
    assert.Equal(t, "Trattoria", rows[0].MerchantName)
    assert.Empty(t, rows[0].TableName)
    assert.Empty(t, rows[0].WindowStart)
    assert.Equal(t, "QWER2345", rows[0].ConfirmationCode)
    assert.NoError(t, mock.ExpectationsWereMet())
}
