package model

import "time"

// Booking is a single reservation of one table inside one window on
// one calendar date.  Bookings are never physically deleted;
// cancellation is a status change and every lifecycle edge is
// recorded in the timestamp fields.
//
// Fields:
//  ID               – primary key identifier.
//  MerchantID       – merchant the booking belongs to.
//  TableID          – reserved table; immutable once booked.
//  WindowID         – window the booking falls in; immutable once booked.
//  UserID           – user who created the booking.
//  Date             – target calendar date (midnight UTC).
//  PartySize        – number of guests.
//  ContactName      – optional contact name.
//  ContactPhone     – optional contact phone.
//  Notes            – optional free-text notes.
//  ConfirmationCode – globally unique short public identifier.
//  Status           – lifecycle state, see internal/booking.Status.
//  ConfirmedAt      – when the booking was confirmed (nullable).
//  CancelledAt      – when the booking was cancelled (nullable).
//  CancelledBy      – user who cancelled (nullable).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
    ID               uint64     // bookings.id
    MerchantID       uint64     // bookings.merchant_id
    TableID          uint64     // bookings.table_id
    WindowID         uint64     // bookings.window_id
    UserID           uint64     // bookings.user_id
    Date             time.Time  // bookings.booking_date
    PartySize        int        // bookings.party_size
    ContactName      *string    // bookings.contact_name (nullable)
    ContactPhone     *string    // bookings.contact_phone (nullable)
    Notes            *string    // bookings.notes (nullable)
    ConfirmationCode string     // bookings.confirmation_code
    Status           string     // bookings.status
    ConfirmedAt      *time.Time // bookings.confirmed_at (nullable)
    CancelledAt      *time.Time // bookings.cancelled_at (nullable)
    CancelledBy      *uint64    // bookings.cancelled_by (nullable)
    CreatedAt        time.Time  // bookings.created_at
    UpdatedAt        time.Time  // bookings.updated_at
}
