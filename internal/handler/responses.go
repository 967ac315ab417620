package handler

import (
    "time"

    "github.com/iliyamo/venue-table-reservation/internal/model"
)

// responses.go holds the JSON shapes shared by merchant and customer
// handlers.  Model structs stay tag-free; handlers convert them here
// before writing a response.

type windowResponse struct {
    ID             uint64 `json:"id"`
    DayOfWeek      int    `json:"day_of_week"`
    StartTime      string `json:"start_time"`
    EndTime        string `json:"end_time"`
    DurationMin    int    `json:"duration_min"`
    ConcurrencyCap int    `json:"concurrency_cap"`
    IsActive       bool   `json:"is_active"`
}

func toWindowResponse(w *model.WindowSchedule) windowResponse {
    return windowResponse{
        ID:             w.ID,
        DayOfWeek:      w.DayOfWeek,
        StartTime:      w.StartTime,
        EndTime:        w.EndTime,
        DurationMin:    w.DurationMin,
        ConcurrencyCap: w.ConcurrencyCap,
        IsActive:       w.IsActive,
    }
}

type policyResponse struct {
    MerchantID          uint64 `json:"merchant_id"`
    AdvanceBookingDays  int    `json:"advance_booking_days"`
    MinPartySize        int    `json:"min_party_size"`
    MaxPartySize        int    `json:"max_party_size"`
    DefaultDurationMin  int    `json:"default_duration_min"`
    RequireConfirmation bool   `json:"require_confirmation"`
    AllowModifications  bool   `json:"allow_modifications"`
    AllowCancellations  bool   `json:"allow_cancellations"`
    CancellationHours   int    `json:"cancellation_hours"`
    AutoConfirm         bool   `json:"auto_confirm"`
    ReminderHours       int    `json:"reminder_hours"`
}

func toPolicyResponse(p *model.BookingPolicy) policyResponse {
    return policyResponse{
        MerchantID:          p.MerchantID,
        AdvanceBookingDays:  p.AdvanceBookingDays,
        MinPartySize:        p.MinPartySize,
        MaxPartySize:        p.MaxPartySize,
        DefaultDurationMin:  p.DefaultDurationMin,
        RequireConfirmation: p.RequireConfirmation,
        AllowModifications:  p.AllowModifications,
        AllowCancellations:  p.AllowCancellations,
        CancellationHours:   p.CancellationHours,
        AutoConfirm:         p.AutoConfirm,
        ReminderHours:       p.ReminderHours,
    }
}

type merchantResponse struct {
    ID     uint64 `json:"id"`
    Name   string `json:"name"`
    Status string `json:"status"`
}

func toMerchantResponse(m *model.Merchant) merchantResponse {
    return merchantResponse{ID: m.ID, Name: m.Name, Status: m.Status}
}

type bookingResponse struct {
    ID               uint64  `json:"id"`
    MerchantID       uint64  `json:"merchant_id"`
    TableID          uint64  `json:"table_id"`
    WindowID         uint64  `json:"window_id"`
    UserID           uint64  `json:"user_id"`
    Date             string  `json:"date"`
    PartySize        int     `json:"party_size"`
    ContactName      *string `json:"contact_name"`
    ContactPhone     *string `json:"contact_phone"`
    Notes            *string `json:"notes"`
    ConfirmationCode string  `json:"confirmation_code"`
    Status           string  `json:"status"`
    ConfirmedAt      *string `json:"confirmed_at"`
    CancelledAt      *string `json:"cancelled_at"`
    CreatedAt        string  `json:"created_at"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
    return bookingResponse{
        ID:               b.ID,
        MerchantID:       b.MerchantID,
        TableID:          b.TableID,
        WindowID:         b.WindowID,
        UserID:           b.UserID,
        Date:             b.Date.Format("2006-01-02"),
        PartySize:        b.PartySize,
        ContactName:      b.ContactName,
        ContactPhone:     b.ContactPhone,
        Notes:            b.Notes,
        ConfirmationCode: b.ConfirmationCode,
        Status:           b.Status,
        ConfirmedAt:      fmtTimePtr(b.ConfirmedAt),
        CancelledAt:      fmtTimePtr(b.CancelledAt),
        CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
    }
}

func fmtTimePtr(t *time.Time) *string {
    if t == nil {
        return nil
    }
    s := t.UTC().Format(time.RFC3339)
    return &s
}
