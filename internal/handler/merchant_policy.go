package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// GetPolicy handles GET /v1/policy.  The policy row is created with
// defaults the first time a merchant touches it, so this never 404s
// for an existing merchant.
func (h *MerchantHandler) GetPolicy(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    p, err := h.Policies.GetOrCreate(c.Request().Context(), m.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load policy"})
    }
    return c.JSON(http.StatusOK, toPolicyResponse(p))
}

// UpdatePolicy handles PATCH /v1/policy with merge semantics: only
// the supplied fields change, everything else keeps its current
// value.
func (h *MerchantHandler) UpdatePolicy(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    cur, err := h.Policies.GetOrCreate(c.Request().Context(), m.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load policy"})
    }
    var body struct {
        AdvanceBookingDays  *int  `json:"advance_booking_days"`
        MinPartySize        *int  `json:"min_party_size"`
        MaxPartySize        *int  `json:"max_party_size"`
        DefaultDurationMin  *int  `json:"default_duration_min"`
        RequireConfirmation *bool `json:"require_confirmation"`
        AllowModifications  *bool `json:"allow_modifications"`
        AllowCancellations  *bool `json:"allow_cancellations"`
        CancellationHours   *int  `json:"cancellation_hours"`
        AutoConfirm         *bool `json:"auto_confirm"`
        ReminderHours       *int  `json:"reminder_hours"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    fields := map[string]string{}
    if body.AdvanceBookingDays != nil {
        if *body.AdvanceBookingDays < 0 {
            fields["advance_booking_days"] = "must not be negative"
        } else {
            cur.AdvanceBookingDays = *body.AdvanceBookingDays
        }
    }
    if body.MinPartySize != nil {
        if *body.MinPartySize < 1 {
            fields["min_party_size"] = "must be at least 1"
        } else {
            cur.MinPartySize = *body.MinPartySize
        }
    }
    if body.MaxPartySize != nil {
        if *body.MaxPartySize < 1 {
            fields["max_party_size"] = "must be at least 1"
        } else {
            cur.MaxPartySize = *body.MaxPartySize
        }
    }
    if body.DefaultDurationMin != nil {
        if *body.DefaultDurationMin < 1 {
            fields["default_duration_min"] = "must be positive"
        } else {
            cur.DefaultDurationMin = *body.DefaultDurationMin
        }
    }
    if body.CancellationHours != nil {
        if *body.CancellationHours < 0 {
            fields["cancellation_hours"] = "must not be negative"
        } else {
            cur.CancellationHours = *body.CancellationHours
        }
    }
    if body.ReminderHours != nil {
        if *body.ReminderHours < 0 {
            fields["reminder_hours"] = "must not be negative"
        } else {
            cur.ReminderHours = *body.ReminderHours
        }
    }
    if body.RequireConfirmation != nil {
        cur.RequireConfirmation = *body.RequireConfirmation
    }
    if body.AllowModifications != nil {
        cur.AllowModifications = *body.AllowModifications
    }
    if body.AllowCancellations != nil {
        cur.AllowCancellations = *body.AllowCancellations
    }
    if body.AutoConfirm != nil {
        cur.AutoConfirm = *body.AutoConfirm
    }
    if cur.MinPartySize > cur.MaxPartySize {
        fields["min_party_size"] = "must not exceed max_party_size"
    }
    if len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }
    if err := h.Policies.Update(c.Request().Context(), cur); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update policy"})
    }
    return c.JSON(http.StatusOK, toPolicyResponse(cur))
}
