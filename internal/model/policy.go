package model

import "time"

// BookingPolicy is the per-merchant configuration consulted on
// every reservation attempt.  Exactly one row exists per merchant;
// it is created lazily with defaults on first access and only ever
// updated, never deleted.
//
// Fields:
//  MerchantID          – merchant this policy belongs to (primary key).
//  AdvanceBookingDays  – how many days ahead bookings are accepted.
//  MinPartySize        – smallest accepted party.
//  MaxPartySize        – largest accepted party.
//  DefaultDurationMin  – default booking duration in minutes.
//  RequireConfirmation – new bookings need explicit staff confirmation.
//  AllowModifications  – users may modify their bookings.
//  AllowCancellations  – users may cancel their bookings.
//  CancellationHours   – minimum hours before window start to cancel.
//  AutoConfirm         – new bookings start CONFIRMED instead of PENDING.
//  ReminderHours       – lead time reminders are computed from.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last update timestamp.
type BookingPolicy struct {
    MerchantID          uint64    // booking_policies.merchant_id
    AdvanceBookingDays  int       // booking_policies.advance_booking_days
    MinPartySize        int       // booking_policies.min_party_size
    MaxPartySize        int       // booking_policies.max_party_size
    DefaultDurationMin  int       // booking_policies.default_duration_min
    RequireConfirmation bool      // booking_policies.require_confirmation
    AllowModifications  bool      // booking_policies.allow_modifications
    AllowCancellations  bool      // booking_policies.allow_cancellations
    CancellationHours   int       // booking_policies.cancellation_hours
    AutoConfirm         bool      // booking_policies.auto_confirm
    ReminderHours       int       // booking_policies.reminder_hours
    CreatedAt           time.Time // booking_policies.created_at
    UpdatedAt           time.Time // booking_policies.updated_at
}

// DefaultBookingPolicy returns the policy a merchant starts with
// before staff have touched any setting.
func DefaultBookingPolicy(merchantID uint64) BookingPolicy {
    return BookingPolicy{
        MerchantID:          merchantID,
        AdvanceBookingDays:  30,
        MinPartySize:        1,
        MaxPartySize:        MaxTableCapacity,
        DefaultDurationMin:  90,
        RequireConfirmation: true,
        AllowModifications:  true,
        AllowCancellations:  true,
        CancellationHours:   2,
        AutoConfirm:         false,
        ReminderHours:       24,
    }
}
