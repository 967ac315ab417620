package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) // a Monday

func TestWithinHorizon(t *testing.T) {
    p := model.DefaultBookingPolicy(1) // 30 day horizon

    assert.NoError(t, WithinHorizon(&p, testNow, testNow), "today is bookable")
    assert.NoError(t, WithinHorizon(&p, testNow.AddDate(0, 0, 30), testNow), "day 30 is the last bookable day")
    assert.ErrorIs(t, WithinHorizon(&p, testNow.AddDate(0, 0, 31), testNow), ErrBeyondHorizon)
    assert.ErrorIs(t, WithinHorizon(&p, testNow.AddDate(0, 0, -1), testNow), ErrDateInPast)
}

func TestWithinHorizonIgnoresTimeOfDay(t *testing.T) {
    p := model.DefaultBookingPolicy(1)
    // Earlier this same day must not count as past.
    morning := time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC)
    assert.NoError(t, WithinHorizon(&p, morning, testNow))
}

func TestCheckPartySize(t *testing.T) {
    p := model.BookingPolicy{MinPartySize: 2, MaxPartySize: 8}
    tbl := &model.Table{Capacity: 4}

    assert.ErrorIs(t, CheckPartySize(&p, tbl, 1), ErrPartyTooSmall)
    assert.ErrorIs(t, CheckPartySize(&p, tbl, 9), ErrPartyTooLarge)
    assert.ErrorIs(t, CheckPartySize(&p, tbl, 5), ErrPartyExceedsTable)
    assert.NoError(t, CheckPartySize(&p, tbl, 4))
    assert.NoError(t, CheckPartySize(&p, nil, 8), "nil table skips the capacity bound")
}

func TestCheckWindowDate(t *testing.T) {
    monday := &model.WindowSchedule{DayOfWeek: 1, StartTime: "18:00:00", EndTime: "22:00:00"}

    assert.NoError(t, CheckWindowDate(monday, testNow), "testNow is a Monday")
    // A Monday window must not accept a Tuesday date: the slot would
    // never open, even though StartOn happily computes an instant
    // for any date.
    tuesday := testNow.AddDate(0, 0, 1)
    assert.ErrorIs(t, CheckWindowDate(monday, tuesday), ErrWindowDayMismatch)
    if start, err := monday.StartOn(tuesday); assert.NoError(t, err) {
        assert.Equal(t, time.Tuesday, start.Weekday())
    }

    sunday := &model.WindowSchedule{DayOfWeek: 0}
    assert.NoError(t, CheckWindowDate(sunday, testNow.AddDate(0, 0, 6)))
}

func TestCheckCancellable(t *testing.T) {
    p := model.BookingPolicy{AllowCancellations: true, CancellationHours: 2}
    start := testNow.Add(3 * time.Hour)

    assert.NoError(t, CheckCancellable(&p, start, testNow))
    assert.ErrorIs(t, CheckCancellable(&p, testNow.Add(90*time.Minute), testNow), ErrInsideCancelCutoff)
    assert.ErrorIs(t, CheckCancellable(&p, testNow.Add(-time.Hour), testNow), ErrInsideCancelCutoff, "window already started")

    p.AllowCancellations = false
    assert.ErrorIs(t, CheckCancellable(&p, start, testNow), ErrCancelNotAllowed)
}

func TestCheckModifiable(t *testing.T) {
    p := model.BookingPolicy{AllowModifications: true}
    assert.NoError(t, CheckModifiable(&p))
    p.AllowModifications = false
    assert.ErrorIs(t, CheckModifiable(&p), ErrModifyNotAllowed)
}

func TestDateOnly(t *testing.T) {
    d := DateOnly(time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC))
    assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), d)
}
