package booking

import (
    "errors"
    "time"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// Sentinel errors for policy checks.  Handlers translate these into
// the corresponding HTTP responses; all are recoverable client-side
// (fix the input or pick another slot).
var (
    ErrDateInPast          = errors.New("date is in the past")
    ErrBeyondHorizon       = errors.New("date is beyond the advance booking horizon")
    ErrPartyTooSmall       = errors.New("party size below merchant minimum")
    ErrPartyTooLarge       = errors.New("party size above merchant maximum")
    ErrPartyExceedsTable   = errors.New("party size exceeds table capacity")
    ErrModifyNotAllowed    = errors.New("merchant does not allow modifications")
    ErrCancelNotAllowed    = errors.New("merchant does not allow cancellations")
    ErrInsideCancelCutoff  = errors.New("too close to window start to cancel")
    ErrWindowDayMismatch   = errors.New("window does not occur on the requested date")
)

// DateOnly truncates t to midnight UTC.  All booking dates are
// compared at day granularity in UTC.
func DateOnly(t time.Time) time.Time {
    t = t.UTC()
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WithinHorizon checks that date is neither in the past nor more
// than the policy's advance-booking horizon ahead of now.  It is a
// pure computation against the supplied clock and needs no
// synchronization.
func WithinHorizon(p *model.BookingPolicy, date, now time.Time) error {
    day := DateOnly(date)
    today := DateOnly(now)
    if day.Before(today) {
        return ErrDateInPast
    }
    if day.After(today.AddDate(0, 0, p.AdvanceBookingDays)) {
        return ErrBeyondHorizon
    }
    return nil
}

// CheckWindowDate verifies that the requested date actually falls
// on the window's weekday.  A window recurs weekly on one day; a
// booking for any other day would occupy a slot the window never
// opens, so the mismatch is rejected before capacity is consulted.
func CheckWindowDate(w *model.WindowSchedule, date time.Time) error {
    if int(date.Weekday()) != w.DayOfWeek {
        return ErrWindowDayMismatch
    }
    return nil
}

// CheckPartySize validates a party against the policy bounds and,
// when a table is supplied, against the table's seating capacity.
func CheckPartySize(p *model.BookingPolicy, tbl *model.Table, partySize int) error {
    if partySize < p.MinPartySize {
        return ErrPartyTooSmall
    }
    if p.MaxPartySize > 0 && partySize > p.MaxPartySize {
        return ErrPartyTooLarge
    }
    if tbl != nil && partySize > tbl.Capacity {
        return ErrPartyExceedsTable
    }
    return nil
}

// CheckCancellable verifies that the policy permits user
// cancellation of a booking whose window opens at windowStart.  The
// cutoff is measured from now to the window's start instant on the
// booking date.
func CheckCancellable(p *model.BookingPolicy, windowStart, now time.Time) error {
    if !p.AllowCancellations {
        return ErrCancelNotAllowed
    }
    cutoff := time.Duration(p.CancellationHours) * time.Hour
    if windowStart.Sub(now) < cutoff {
        return ErrInsideCancelCutoff
    }
    return nil
}

// CheckModifiable verifies that the policy permits user
// modification at all.  Field-level validation happens separately.
func CheckModifiable(p *model.BookingPolicy) error {
    if !p.AllowModifications {
        return ErrModifyNotAllowed
    }
    return nil
}
