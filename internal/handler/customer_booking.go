package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/model"
    "github.com/iliyamo/venue-table-reservation/internal/queue"
    "github.com/iliyamo/venue-table-reservation/internal/repository"
    queuepub "github.com/iliyamo/venue-table-reservation/internal/service"
)

// CustomerHandler groups the repositories needed to create and
// manage bookings on behalf of end users.  All methods assume JWT
// authentication has already run; the capacity-critical write path
// is delegated to BookingRepo.Reserve which performs the count and
// insert atomically.
type CustomerHandler struct {
    Merchants *repository.MerchantRepo
    Tables    *repository.TableRepo
    Windows   *repository.WindowRepo
    Policies  *repository.PolicyRepo
    Bookings  *repository.BookingRepo
}

// NewCustomerHandler constructs a CustomerHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCustomerHandler(merchants *repository.MerchantRepo, tables *repository.TableRepo, windows *repository.WindowRepo, policies *repository.PolicyRepo, bookings *repository.BookingRepo) *CustomerHandler {
    if merchants == nil || tables == nil || windows == nil || policies == nil || bookings == nil {
        panic("nil repository passed to NewCustomerHandler")
    }
    return &CustomerHandler{
        Merchants: merchants,
        Tables:    tables,
        Windows:   windows,
        Policies:  policies,
        Bookings:  bookings,
    }
}

// CreateBooking handles POST /v1/bookings.  The request names a
// (table, window, date) triple; the handler validates references,
// policy and party size, then lets the repository enforce capacity
// and confirmation-code uniqueness inside one transaction.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        TableID      uint64  `json:"table_id"`
        WindowID     uint64  `json:"window_id"`
        Date         string  `json:"date"`
        PartySize    int     `json:"party_size"`
        ContactName  *string `json:"contact_name"`
        ContactPhone *string `json:"contact_phone"`
        Notes        *string `json:"notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    fields := map[string]string{}
    if body.TableID == 0 {
        fields["table_id"] = "required"
    }
    if body.WindowID == 0 {
        fields["window_id"] = "required"
    }
    if body.PartySize < 1 {
        fields["party_size"] = "must be at least 1"
    }
    date, err := time.Parse("2006-01-02", body.Date)
    if err != nil {
        fields["date"] = "must be YYYY-MM-DD"
    }
    if len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }

    ctx := c.Request().Context()
    tbl, err := h.Tables.GetByID(ctx, body.TableID)
    if err != nil {
        if errors.Is(err, repository.ErrTableNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    win, err := h.Windows.GetByID(ctx, body.WindowID)
    if err != nil {
        if errors.Is(err, repository.ErrWindowNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "window not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    // Table and window must belong to the same, operable merchant.
    if tbl.MerchantID != win.MerchantID {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "table and window belong to different merchants"})
    }
    if !win.IsActive || tbl.Status != model.TableStatusAvailable {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "table or window is not open for booking"})
    }
    if err := booking.CheckWindowDate(win, date); err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    merchant, err := h.Merchants.GetByID(ctx, tbl.MerchantID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !merchant.Operable() {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "merchant is not accepting bookings"})
    }

    policy, err := h.Policies.GetOrCreate(ctx, merchant.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load policy"})
    }
    now := time.Now().UTC()
    if err := booking.WithinHorizon(policy, date, now); err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    if err := booking.CheckPartySize(policy, tbl, body.PartySize); err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }

    status := booking.InitialStatus(policy.AutoConfirm)
    b := &model.Booking{
        MerchantID:   merchant.ID,
        TableID:      tbl.ID,
        WindowID:     win.ID,
        UserID:       userID,
        Date:         booking.DateOnly(date),
        PartySize:    body.PartySize,
        ContactName:  body.ContactName,
        ContactPhone: body.ContactPhone,
        Notes:        body.Notes,
        Status:       string(status),
    }
    if status == booking.StatusConfirmed {
        b.ConfirmedAt = &now
    }
    if err := h.Bookings.Reserve(ctx, b, win.ConcurrencyCap); err != nil {
        switch {
        case errors.Is(err, repository.ErrCapacityExceeded):
            return c.JSON(http.StatusConflict, echo.Map{"error": "window is fully booked for this table and date"})
        case errors.Is(err, booking.ErrCodeExhausted):
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not allocate confirmation code"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
        }
    }

    // Best effort: downstream consumers log and compute reminders
    // from the event, a broker outage must not fail the booking.
    _ = queuepub.PublishBookingEvent(ctx, queue.BookingEvent{
        Type:             queue.EventBookingCreated,
        BookingID:        b.ID,
        ConfirmationCode: b.ConfirmationCode,
        UserID:           b.UserID,
        MerchantID:       merchant.ID,
        MerchantName:     merchant.Name,
        TableName:        tbl.Name,
        Date:             b.Date.Format("2006-01-02"),
        WindowStart:      win.StartTime,
        PartySize:        b.PartySize,
        Status:           b.Status,
        ReminderHours:    policy.ReminderHours,
        OccurredAt:       now.Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// ListMyBookings handles GET /v1/my-bookings with ?status filter
// and pagination.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    q := repository.BookingQuery{UserID: userID}
    if raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); raw != "" {
        if !booking.Status(raw).Valid() {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
        }
        q.Status = raw
    }
    p := parsePage(c)
    q.Page, q.PageSize = p.Page, p.PageSize

    items, total, err := h.Bookings.List(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "meta": newPageMeta(p, total)})
}

// GetBookingByCode handles GET /v1/bookings/code/:code.  The code
// is public but the booking is only revealed to its owner; other
// callers get 403.
func (h *CustomerHandler) GetBookingByCode(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid confirmation code"})
    }
    b, err := h.Bookings.GetByCode(c.Request().Context(), code)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if b.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusOK, toBookingResponse(b))
}

// loadOwnBooking fetches a booking by path ID and enforces that it
// belongs to the caller.  It writes the error response itself and
// returns nil when the caller may not proceed.
func (h *CustomerHandler) loadOwnBooking(c echo.Context, userID uint64) *model.Booking {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
        return nil
    }
    b, err := h.Bookings.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return nil
    }
    if b.UserID != userID {
        _ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        return nil
    }
    return b
}

// ModifyBooking handles PATCH /v1/bookings/:id.  Users may change
// party size, notes and contact details while the booking is not
// cancelled and its date has not passed.  Table, window and date
// are immutable once booked.
func (h *CustomerHandler) ModifyBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    b := h.loadOwnBooking(c, userID)
    if b == nil {
        return nil
    }
    now := time.Now().UTC()
    if booking.Status(b.Status) == booking.StatusCancelled {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking is cancelled"})
    }
    if booking.DateOnly(b.Date).Before(booking.DateOnly(now)) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking date has passed"})
    }

    ctx := c.Request().Context()
    policy, err := h.Policies.GetOrCreate(ctx, b.MerchantID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load policy"})
    }
    if err := booking.CheckModifiable(policy); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }

    var body struct {
        PartySize    *int    `json:"party_size"`
        ContactName  *string `json:"contact_name"`
        ContactPhone *string `json:"contact_phone"`
        Notes        *string `json:"notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.PartySize != nil {
        tbl, err := h.Tables.GetByID(ctx, b.TableID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if err := booking.CheckPartySize(policy, tbl, *body.PartySize); err != nil {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
        }
        b.PartySize = *body.PartySize
    }
    if body.ContactName != nil {
        b.ContactName = body.ContactName
    }
    if body.ContactPhone != nil {
        b.ContactPhone = body.ContactPhone
    }
    if body.Notes != nil {
        b.Notes = body.Notes
    }
    if err := h.Bookings.UpdateUserEditable(ctx, b); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update booking"})
    }
    updated, err := h.Bookings.GetByID(ctx, b.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toBookingResponse(updated))
}

// CancelBooking handles DELETE /v1/bookings/:id.  Cancellation is a
// status change, never a row deletion.  It is refused when the
// policy forbids it, when the booking date has passed or when the
// window opens in less than the policy's cancellation cutoff.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    b := h.loadOwnBooking(c, userID)
    if b == nil {
        return nil
    }
    now := time.Now().UTC()
    if booking.Status(b.Status).Terminal() {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already closed"})
    }
    if booking.DateOnly(b.Date).Before(booking.DateOnly(now)) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking date has passed"})
    }

    ctx := c.Request().Context()
    policy, err := h.Policies.GetOrCreate(ctx, b.MerchantID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load policy"})
    }
    win, err := h.Windows.GetByID(ctx, b.WindowID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    start, err := win.StartOn(b.Date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := booking.CheckCancellable(policy, start, now); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }
    if err := h.Bookings.Cancel(ctx, b.ID, userID); err != nil {
        if errors.Is(err, booking.ErrBadTransition) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already closed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel booking"})
    }

    _ = queuepub.PublishBookingEvent(ctx, queue.BookingEvent{
        Type:             queue.EventBookingCancelled,
        BookingID:        b.ID,
        ConfirmationCode: b.ConfirmationCode,
        UserID:           b.UserID,
        MerchantID:       b.MerchantID,
        Date:             b.Date.Format("2006-01-02"),
        WindowStart:      win.StartTime,
        PartySize:        b.PartySize,
        Status:           string(booking.StatusCancelled),
        OccurredAt:       now.Format(time.RFC3339),
    })

    return c.NoContent(http.StatusNoContent)
}
