// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrResourceInUse signals that a table or window still has
// live bookings and cannot be deleted.
package repository

import "errors"

// ErrResourceInUse is returned when a table or window cannot be
// deleted because non-terminal bookings still reference it.
// Handlers should translate this into an HTTP 409 response.
var ErrResourceInUse = errors.New("resource has active bookings")

// ErrCapacityExceeded is returned when a (table, window, date)
// slot already holds as many active bookings as the window's
// concurrency cap allows.
var ErrCapacityExceeded = errors.New("window capacity exceeded for table and date")

// Not-found sentinels, one per entity. Cross-merchant lookups
// surface these rather than a forbidden error so that callers
// cannot probe for the existence of another merchant's resources.
var (
    ErrMerchantNotFound = errors.New("merchant not found")
    ErrTableNotFound    = errors.New("table not found")
    ErrWindowNotFound   = errors.New("window not found")
    ErrBookingNotFound  = errors.New("booking not found")
)
