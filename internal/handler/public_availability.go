package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-table-reservation/internal/availability"
    "github.com/iliyamo/venue-table-reservation/internal/booking"
    "github.com/iliyamo/venue-table-reservation/internal/repository"
)

// AvailabilityHandler serves the read-only availability query.  The
// endpoint is public: no authentication is required to ask which
// windows are open.
type AvailabilityHandler struct {
    Merchants *repository.MerchantRepo
    Policies  *repository.PolicyRepo
    Engine    *availability.Engine
}

// NewAvailabilityHandler constructs an AvailabilityHandler.  All
// dependencies must be non-nil.
func NewAvailabilityHandler(merchants *repository.MerchantRepo, policies *repository.PolicyRepo, engine *availability.Engine) *AvailabilityHandler {
    if merchants == nil || policies == nil || engine == nil {
        panic("nil dependency passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{Merchants: merchants, Policies: policies, Engine: engine}
}

// GetAvailability handles GET /v1/merchants/:id/availability with
// required ?date and ?party_size query parameters.  Dates outside
// the merchant's advance-booking policy come back as 422 so clients
// can distinguish them from malformed input.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
    merchantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || merchantID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid merchant id"})
    }
    fields := map[string]string{}
    date, err := time.Parse("2006-01-02", c.QueryParam("date"))
    if err != nil {
        fields["date"] = "must be YYYY-MM-DD"
    }
    partySize, err := strconv.Atoi(c.QueryParam("party_size"))
    if err != nil || partySize < 1 {
        fields["party_size"] = "must be a positive integer"
    }
    if len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }

    ctx := c.Request().Context()
    merchant, err := h.Merchants.GetByID(ctx, merchantID)
    if err != nil {
        if errors.Is(err, repository.ErrMerchantNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "merchant not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !merchant.Operable() {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "merchant is not accepting bookings"})
    }
    policy, err := h.Policies.GetOrCreate(ctx, merchant.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load policy"})
    }

    res, err := h.Engine.Compute(ctx, policy, merchant.ID, date, partySize, time.Now().UTC())
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrDateInPast), errors.Is(err, booking.ErrBeyondHorizon):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability lookup failed"})
        }
    }

    open := make([]echo.Map, 0, len(res.OpenWindows))
    for i := range res.OpenWindows {
        open = append(open, toOpenWindowResponse(&res.OpenWindows[i]))
    }
    out := echo.Map{
        "merchant_id":  merchant.ID,
        "date":         res.Date.Format("2006-01-02"),
        "party_size":   res.PartySize,
        "open_windows": open,
    }
    tables := make([]echo.Map, 0, len(res.CandidateTables))
    for _, t := range res.CandidateTables {
        tables = append(tables, echo.Map{"id": t.ID, "name": t.Name, "capacity": t.Capacity})
    }
    out["candidate_tables"] = tables
    if res.SuggestedNext != nil {
        out["suggested_next"] = echo.Map{
            "date":   res.SuggestedNext.Date.Format("2006-01-02"),
            "window": toOpenWindowResponse(&res.SuggestedNext.Window),
        }
    }
    return c.JSON(http.StatusOK, out)
}

func toOpenWindowResponse(ow *availability.OpenWindow) echo.Map {
    return echo.Map{
        "window":        toWindowResponse(&ow.Window),
        "best_table_id": ow.BestTableID,
        "remaining":     ow.Remaining,
    }
}
