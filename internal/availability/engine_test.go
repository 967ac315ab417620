package availability

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// fakeStore implements the three source interfaces over in-memory
// data so the search logic can be exercised without a database.
type fakeStore struct {
    tables  []model.Table
    windows []model.WindowSchedule // keyed by DayOfWeek at query time
    counts  map[[3]uint64]int      // (tableID, windowID, unix day) -> active bookings
}

func (f *fakeStore) ListAvailable(_ context.Context, merchantID uint64, minCapacity int) ([]model.Table, error) {
    out := []model.Table{}
    for _, t := range f.tables {
        if t.MerchantID == merchantID && t.Status == model.TableStatusAvailable && t.Capacity >= minCapacity {
            out = append(out, t)
        }
    }
    return out, nil
}

func (f *fakeStore) ListActiveByDay(_ context.Context, merchantID uint64, dayOfWeek int) ([]model.WindowSchedule, error) {
    out := []model.WindowSchedule{}
    for _, w := range f.windows {
        if w.MerchantID == merchantID && w.IsActive && w.DayOfWeek == dayOfWeek {
            out = append(out, w)
        }
    }
    return out, nil
}

func (f *fakeStore) CountActive(_ context.Context, tableID, windowID uint64, date time.Time) (int, error) {
    return f.counts[[3]uint64{tableID, windowID, uint64(date.Unix())}], nil
}

func (f *fakeStore) book(tableID, windowID uint64, date time.Time) {
    if f.counts == nil {
        f.counts = map[[3]uint64]int{}
    }
    f.counts[[3]uint64{tableID, windowID, uint64(date.Unix())}]++
}

var (
    now    = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) // Monday
    monday = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)  // next Monday
)

func newFixture() *fakeStore {
    return &fakeStore{
        tables: []model.Table{
            {ID: 1, MerchantID: 7, Name: "Big corner", Capacity: 8, Status: model.TableStatusAvailable},
            {ID: 2, MerchantID: 7, Name: "Deuce", Capacity: 2, Status: model.TableStatusAvailable},
            {ID: 3, MerchantID: 7, Name: "Four-top", Capacity: 4, Status: model.TableStatusAvailable},
            {ID: 4, MerchantID: 7, Name: "Broken", Capacity: 6, Status: model.TableStatusUnavailable},
            {ID: 5, MerchantID: 9, Name: "Other venue", Capacity: 4, Status: model.TableStatusAvailable},
        },
        windows: []model.WindowSchedule{
            {ID: 10, MerchantID: 7, DayOfWeek: 1, StartTime: "18:00:00", EndTime: "19:00:00", ConcurrencyCap: 2, IsActive: true},
            {ID: 11, MerchantID: 7, DayOfWeek: 1, StartTime: "19:00:00", EndTime: "20:00:00", ConcurrencyCap: 1, IsActive: false},
        },
    }
}

func policyFor(merchantID uint64) *model.BookingPolicy {
    p := model.DefaultBookingPolicy(merchantID)
    return &p
}

func TestComputeOrdersCandidatesByCapacity(t *testing.T) {
    store := newFixture()
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 2, now)
    require.NoError(t, err)
    require.Len(t, res.CandidateTables, 3)
    assert.Equal(t, uint64(2), res.CandidateTables[0].ID, "smallest sufficient table first")
    assert.Equal(t, uint64(3), res.CandidateTables[1].ID)
    assert.Equal(t, uint64(1), res.CandidateTables[2].ID)
}

func TestComputeFiltersByPartySizeAndStatus(t *testing.T) {
    store := newFixture()
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 5, now)
    require.NoError(t, err)
    require.Len(t, res.CandidateTables, 1, "only the 8-seat table fits a party of 5; the 6-seat one is unavailable")
    assert.Equal(t, uint64(1), res.CandidateTables[0].ID)
}

func TestComputeSkipsInactiveWindows(t *testing.T) {
    store := newFixture()
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 2, now)
    require.NoError(t, err)
    require.Len(t, res.OpenWindows, 1)
    assert.Equal(t, uint64(10), res.OpenWindows[0].Window.ID)
    assert.Equal(t, 2, res.OpenWindows[0].Remaining)
}

func TestComputeNeverReportsZeroRemaining(t *testing.T) {
    store := newFixture()
    // Fill the cap=2 window on every candidate table for the date.
    for _, tid := range []uint64{1, 2, 3} {
        store.book(tid, 10, monday)
        store.book(tid, 10, monday)
    }
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 2, now)
    require.NoError(t, err)
    assert.Empty(t, res.OpenWindows, "a full window must not be reported open")
    for _, ow := range res.OpenWindows {
        assert.Greater(t, ow.Remaining, 0)
    }
}

func TestComputeReportsLeastOccupiedTable(t *testing.T) {
    store := newFixture()
    store.book(2, 10, monday) // deuce has one booking, others none
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 2, now)
    require.NoError(t, err)
    require.Len(t, res.OpenWindows, 1)
    assert.Equal(t, 2, res.OpenWindows[0].Remaining)
    assert.NotEqual(t, uint64(2), res.OpenWindows[0].BestTableID)
}

func TestForwardSearchFindsNextMonday(t *testing.T) {
    store := newFixture()
    // Fill next Monday entirely; the Monday after remains free.
    for _, tid := range []uint64{1, 2, 3} {
        store.book(tid, 10, monday)
        store.book(tid, 10, monday)
    }
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 2, now)
    require.NoError(t, err)
    assert.Empty(t, res.OpenWindows)
    require.NotNil(t, res.SuggestedNext)
    assert.Equal(t, monday.AddDate(0, 0, 7), res.SuggestedNext.Date)
    assert.Equal(t, uint64(10), res.SuggestedNext.Window.Window.ID)
}

func TestForwardSearchRespectsHorizon(t *testing.T) {
    store := newFixture()
    for _, tid := range []uint64{1, 2, 3} {
        store.book(tid, 10, monday)
        store.book(tid, 10, monday)
    }
    eng := NewEngine(store, store, store)

    p := policyFor(7)
    p.AdvanceBookingDays = 7 // next Monday is the last bookable day
    res, err := eng.Compute(context.Background(), p, 7, monday, 2, now)
    require.NoError(t, err)
    assert.Empty(t, res.OpenWindows)
    assert.Nil(t, res.SuggestedNext, "openings past the horizon are not suggested")
}

func TestComputeNoTableLargeEnough(t *testing.T) {
    store := newFixture()
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(7), 7, monday, 12, now)
    require.NoError(t, err)
    assert.Empty(t, res.CandidateTables)
    assert.Empty(t, res.OpenWindows)
    assert.Nil(t, res.SuggestedNext)
}

func TestComputeRejectsDatesOutsideHorizon(t *testing.T) {
    store := newFixture()
    eng := NewEngine(store, store, store)

    _, err := eng.Compute(context.Background(), policyFor(7), 7, now.AddDate(0, 0, 31), 2, now)
    assert.ErrorIs(t, err, booking.ErrBeyondHorizon)

    _, err = eng.Compute(context.Background(), policyFor(7), 7, now.AddDate(0, 0, -1), 2, now)
    assert.ErrorIs(t, err, booking.ErrDateInPast)
}

func TestComputeScopedToMerchant(t *testing.T) {
    store := newFixture()
    eng := NewEngine(store, store, store)

    res, err := eng.Compute(context.Background(), policyFor(9), 9, monday, 2, now)
    require.NoError(t, err)
    require.Len(t, res.CandidateTables, 1)
    assert.Equal(t, uint64(5), res.CandidateTables[0].ID)
    assert.Empty(t, res.OpenWindows, "merchant 9 has no windows")
}
