package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/queue"
    "github.com/iliyamo/venue-table-reservation/internal/repository"
    queuepub "github.com/iliyamo/venue-table-reservation/internal/service"
)

// ListBookings handles GET /v1/merchant/bookings.  Staff see every
// booking against their venue, filterable by ?status and ?date
// (YYYY-MM-DD), paginated.
func (h *MerchantHandler) ListBookings(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    q := repository.BookingQuery{MerchantID: m.ID}
    if raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("status"))); raw != "" {
        if !booking.Status(raw).Valid() {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
        }
        q.Status = raw
    }
    if raw := c.QueryParam("date"); raw != "" {
        d, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
        }
        q.Date = &d
    }
    p := parsePage(c)
    q.Page, q.PageSize = p.Page, p.PageSize

    items, total, err := h.Bookings.List(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items, "meta": newPageMeta(p, total)})
}

// SetBookingStatus handles PATCH /v1/merchant/bookings/:id/status.
// Only transitions allowed by the lifecycle state machine are
// accepted; anything else is a 409.  The write itself is a
// compare-and-swap against the status the handler observed, so a
// concurrent transition also surfaces as a conflict.
func (h *MerchantHandler) SetBookingStatus(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    to := booking.Status(strings.ToUpper(strings.TrimSpace(body.Status)))
    if !to.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }

    ctx := c.Request().Context()
    b, err := h.Bookings.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    // Bookings of other venues are reported as missing, not
    // forbidden, so staff cannot probe foreign booking IDs.
    if b.MerchantID != m.ID {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    }

    from := booking.Status(b.Status)
    if err := booking.Transition(from, to); err != nil {
        return c.JSON(http.StatusConflict, echo.Map{"error": "status transition not allowed"})
    }

    userID, _ := getUserID(c)
    if to == booking.StatusCancelled {
        err = h.Bookings.Cancel(ctx, b.ID, userID)
    } else {
        err = h.Bookings.SetStatus(ctx, b.ID, from, to)
    }
    if err != nil {
        if errors.Is(err, booking.ErrBadTransition) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "status transition not allowed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update status"})
    }

    updated, err := h.Bookings.GetByID(ctx, b.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    if to == booking.StatusCancelled {
        var windowStart string
        if win, werr := h.Windows.GetByID(ctx, b.WindowID); werr == nil {
            windowStart = win.StartTime
        }
        _ = queuepub.PublishBookingEvent(ctx, queue.BookingEvent{
            Type:             queue.EventBookingCancelled,
            BookingID:        updated.ID,
            ConfirmationCode: updated.ConfirmationCode,
            UserID:           updated.UserID,
            MerchantID:       updated.MerchantID,
            MerchantName:     m.Name,
            Date:             updated.Date.Format("2006-01-02"),
            WindowStart:      windowStart,
            PartySize:        updated.PartySize,
            Status:           updated.Status,
            OccurredAt:       time.Now().UTC().Format(time.RFC3339),
        })
    }

    return c.JSON(http.StatusOK, toBookingResponse(updated))
}
