package model

import "time"

// Bounds for schedule window attributes.  Duration is expressed in
// minutes; the concurrency cap limits how many simultaneous
// non-terminal bookings one table may hold inside this window on a
// single date.
const (
    MinWindowDurationMin = 15
    MaxWindowDurationMin = 480
    MinConcurrencyCap    = 1
    MaxConcurrencyCap    = 10
)

// WindowSchedule is a recurring weekly availability window.  A
// window repeats every week on DayOfWeek (0 = Sunday, matching
// time.Weekday) between StartTime and EndTime on the same day.
//
// Fields:
//  ID             – primary key identifier.
//  MerchantID     – merchant that owns the window.
//  DayOfWeek      – weekday 0..6 the window recurs on.
//  StartTime      – time of day the window opens ("HH:MM:SS").
//  EndTime        – time of day the window closes; strictly after StartTime.
//  DurationMin    – booking duration in minutes.
//  ConcurrencyCap – max simultaneous bookings per table per date.
//  IsActive       – inactive windows are skipped by availability.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type WindowSchedule struct {
    ID             uint64    // schedule_windows.id
    MerchantID     uint64    // schedule_windows.merchant_id
    DayOfWeek      int       // schedule_windows.day_of_week
    StartTime      string    // schedule_windows.start_time
    EndTime        string    // schedule_windows.end_time
    DurationMin    int       // schedule_windows.duration_min
    ConcurrencyCap int       // schedule_windows.concurrency_cap
    IsActive       bool      // schedule_windows.is_active
    CreatedAt      time.Time // schedule_windows.created_at
    UpdatedAt      time.Time // schedule_windows.updated_at
}

// StartOn combines the window's start time-of-day with a calendar
// date, yielding the concrete instant the window opens on that
// date.  The time is interpreted in UTC, consistent with every
// other timestamp in the store.
func (w *WindowSchedule) StartOn(date time.Time) (time.Time, error) {
    t, err := time.Parse("15:04:05", w.StartTime)
    if err != nil {
        // start_time may come back from MySQL without seconds
        t, err = time.Parse("15:04", w.StartTime)
        if err != nil {
            return time.Time{}, err
        }
    }
    return time.Date(date.Year(), date.Month(), date.Day(),
        t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}
