// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in BookingEvent.Type.
const (
    EventBookingCreated   = "booking.created"
    EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is created or cancelled.
// It contains enough information for downstream consumers to log, notify,
// or schedule reminders without querying the primary database.
type BookingEvent struct {
    Type             string `json:"type"`
    BookingID        uint64 `json:"booking_id"`
    ConfirmationCode string `json:"confirmation_code"`
    UserID           uint64 `json:"user_id"`
    MerchantID       uint64 `json:"merchant_id"`
    MerchantName     string `json:"merchant_name,omitempty"`
    TableName        string `json:"table_name,omitempty"`
    Date             string `json:"date"`
    WindowStart      string `json:"window_start"`
    PartySize        int    `json:"party_size"`
    Status           string `json:"status"`
    ReminderHours    int    `json:"reminder_hours,omitempty"`
    OccurredAt       string `json:"occurred_at"`
}
