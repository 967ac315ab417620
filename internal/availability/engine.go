// Package availability computes which windows and tables are open
// for a (merchant, date, party size) query, including the bounded
// forward search for the next opening when the requested date is
// full.  The engine reads through narrow source interfaces so the
// search logic stays independent of the SQL layer.
package availability

import (
    "context"
    "sort"
    "time"

    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// ForwardSearchDays bounds how far past the requested date the
// engine looks for a fallback opening.  The search trades
// completeness for bounded cost; callers needing a later slot must
// re-query with a later date.
const ForwardSearchDays = 30

// TableSource lists a merchant's bookable tables that can seat at
// least minCapacity guests.
type TableSource interface {
    ListAvailable(ctx context.Context, merchantID uint64, minCapacity int) ([]model.Table, error)
}

// WindowSource lists a merchant's active windows recurring on the
// given weekday (0 = Sunday).
type WindowSource interface {
    ListActiveByDay(ctx context.Context, merchantID uint64, dayOfWeek int) ([]model.WindowSchedule, error)
}

// BookingCounter counts non-terminal bookings holding a
// (table, window, date) slot.
type BookingCounter interface {
    CountActive(ctx context.Context, tableID, windowID uint64, date time.Time) (int, error)
}

// OpenWindow is a window with at least one candidate table below
// its concurrency cap on the queried date.  Remaining reports
// cap − count for the least occupied candidate table, so it is
// always at least one.
type OpenWindow struct {
    Window      model.WindowSchedule
    BestTableID uint64
    Remaining   int
}

// Suggestion is the first opening found by the forward search when
// the requested date itself has none.
type Suggestion struct {
    Date   time.Time
    Window OpenWindow
}

// Result is the full availability answer for one query.
type Result struct {
    Date            time.Time     // requested date, midnight UTC
    PartySize       int           // requested party size
    CandidateTables []model.Table // tables that can seat the party, smallest first
    OpenWindows     []OpenWindow  // open windows on the requested date
    SuggestedNext   *Suggestion   // first later opening, nil when none within bounds
}

// Engine wires the three read sources together.
type Engine struct {
    Tables  TableSource
    Windows WindowSource
    Counts  BookingCounter
}

// NewEngine constructs an Engine and panics on nil sources, in line
// with how handlers treat missing repositories.
func NewEngine(tables TableSource, windows WindowSource, counts BookingCounter) *Engine {
    if tables == nil || windows == nil || counts == nil {
        panic("nil source passed to NewEngine")
    }
    return &Engine{Tables: tables, Windows: windows, Counts: counts}
}

// Compute answers an availability query.  It rejects dates outside
// the policy's advance-booking horizon (propagating the policy
// sentinel), then reports the open windows for the requested date.
// When no window is open it walks forward day by day, up to
// ForwardSearchDays ahead and never past the horizon, and returns
// the first opening as SuggestedNext.
func (e *Engine) Compute(ctx context.Context, policy *model.BookingPolicy, merchantID uint64, date time.Time, partySize int, now time.Time) (*Result, error) {
    day := booking.DateOnly(date)
    if err := booking.WithinHorizon(policy, day, now); err != nil {
        return nil, err
    }

    tables, err := e.Tables.ListAvailable(ctx, merchantID, partySize)
    if err != nil {
        return nil, err
    }
    // Smallest sufficient table first minimizes wasted seating.
    sort.SliceStable(tables, func(i, j int) bool { return tables[i].Capacity < tables[j].Capacity })

    res := &Result{
        Date:            day,
        PartySize:       partySize,
        CandidateTables: tables,
        OpenWindows:     []OpenWindow{},
    }
    if len(tables) == 0 {
        // No table can seat the party on any date, so the forward
        // search would only repeat the same empty answer.
        return res, nil
    }

    open, err := e.openWindowsOn(ctx, merchantID, tables, day)
    if err != nil {
        return nil, err
    }
    if len(open) > 0 {
        res.OpenWindows = open
        return res, nil
    }

    for offset := 1; offset <= ForwardSearchDays; offset++ {
        next := day.AddDate(0, 0, offset)
        if booking.WithinHorizon(policy, next, now) != nil {
            break
        }
        open, err := e.openWindowsOn(ctx, merchantID, tables, next)
        if err != nil {
            return nil, err
        }
        if len(open) > 0 {
            res.SuggestedNext = &Suggestion{Date: next, Window: open[0]}
            break
        }
    }
    return res, nil
}

// openWindowsOn evaluates every active window on date's weekday
// against the candidate tables.  A window is open when at least one
// candidate holds fewer active bookings than the window's
// concurrency cap.
func (e *Engine) openWindowsOn(ctx context.Context, merchantID uint64, tables []model.Table, date time.Time) ([]OpenWindow, error) {
    windows, err := e.Windows.ListActiveByDay(ctx, merchantID, int(date.Weekday()))
    if err != nil {
        return nil, err
    }
    open := []OpenWindow{}
    for _, w := range windows {
        var bestTable uint64
        bestRemaining := 0
        for _, t := range tables {
            count, err := e.Counts.CountActive(ctx, t.ID, w.ID, date)
            if err != nil {
                return nil, err
            }
            if remaining := w.ConcurrencyCap - count; remaining > bestRemaining {
                bestRemaining = remaining
                bestTable = t.ID
            }
        }
        if bestRemaining > 0 {
            open = append(open, OpenWindow{Window: w, BestTableID: bestTable, Remaining: bestRemaining})
        }
    }
    return open, nil
}
