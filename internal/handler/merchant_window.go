package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-table-reservation/internal/model"
    "github.com/iliyamo/venue-table-reservation/internal/repository"
)

// normalizeTimeOfDay accepts "HH:MM" or "HH:MM:SS" and returns the
// canonical "HH:MM:SS" form, or an empty string when unparseable.
func normalizeTimeOfDay(s string) string {
    s = strings.TrimSpace(s)
    if t, err := time.Parse("15:04:05", s); err == nil {
        return t.Format("15:04:05")
    }
    if t, err := time.Parse("15:04", s); err == nil {
        return t.Format("15:04:05")
    }
    return ""
}

// validateWindowBounds collects field errors for the window
// attributes shared between create and update.
func validateWindowBounds(day, durationMin, cap int, start, end string) map[string]string {
    fields := map[string]string{}
    if day < 0 || day > 6 {
        fields["day_of_week"] = "must be between 0 (Sunday) and 6 (Saturday)"
    }
    if durationMin < model.MinWindowDurationMin || durationMin > model.MaxWindowDurationMin {
        fields["duration_min"] = "must be between 15 and 480"
    }
    if cap < model.MinConcurrencyCap || cap > model.MaxConcurrencyCap {
        fields["concurrency_cap"] = "must be between 1 and 10"
    }
    if start == "" {
        fields["start_time"] = "must be a time of day like 18:00"
    }
    if end == "" {
        fields["end_time"] = "must be a time of day like 19:00"
    }
    if start != "" && end != "" && start >= end {
        fields["start_time"] = "must be strictly before end_time"
    }
    return fields
}

// ListWindows handles GET /v1/windows with an optional ?day filter.
func (h *MerchantHandler) ListWindows(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    var day *int
    if raw := c.QueryParam("day"); raw != "" {
        d, err := strconv.Atoi(raw)
        if err != nil || d < 0 || d > 6 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be between 0 and 6"})
        }
        day = &d
    }
    windows, err := h.Windows.ListByMerchant(c.Request().Context(), m.ID, day)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load windows"})
    }
    items := make([]windowResponse, 0, len(windows))
    for i := range windows {
        items = append(items, toWindowResponse(&windows[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateWindow handles POST /v1/windows.  Bounds: day 0..6,
// duration 15..480 minutes, concurrency cap 1..10, start strictly
// before end on the same day.
func (h *MerchantHandler) CreateWindow(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    var body struct {
        DayOfWeek      int    `json:"day_of_week"`
        StartTime      string `json:"start_time"`
        EndTime        string `json:"end_time"`
        DurationMin    int    `json:"duration_min"`
        ConcurrencyCap int    `json:"concurrency_cap"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    start := normalizeTimeOfDay(body.StartTime)
    end := normalizeTimeOfDay(body.EndTime)
    if fields := validateWindowBounds(body.DayOfWeek, body.DurationMin, body.ConcurrencyCap, start, end); len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }
    w := &model.WindowSchedule{
        MerchantID:     m.ID,
        DayOfWeek:      body.DayOfWeek,
        StartTime:      start,
        EndTime:        end,
        DurationMin:    body.DurationMin,
        ConcurrencyCap: body.ConcurrencyCap,
        IsActive:       true,
    }
    if err := h.Windows.Create(c.Request().Context(), w); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create window"})
    }
    return c.JSON(http.StatusCreated, toWindowResponse(w))
}

// UpdateWindow handles PATCH /v1/windows/:id with partial
// semantics; omitted fields keep their current values and the
// merged result is validated as a whole.
func (h *MerchantHandler) UpdateWindow(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid window id"})
    }
    cur, err := h.Windows.GetByIDAndMerchant(c.Request().Context(), id, m.ID)
    if err != nil {
        if errors.Is(err, repository.ErrWindowNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "window not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var body struct {
        DayOfWeek      *int    `json:"day_of_week"`
        StartTime      *string `json:"start_time"`
        EndTime        *string `json:"end_time"`
        DurationMin    *int    `json:"duration_min"`
        ConcurrencyCap *int    `json:"concurrency_cap"`
        IsActive       *bool   `json:"is_active"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.DayOfWeek != nil {
        cur.DayOfWeek = *body.DayOfWeek
    }
    if body.StartTime != nil {
        cur.StartTime = normalizeTimeOfDay(*body.StartTime)
    }
    if body.EndTime != nil {
        cur.EndTime = normalizeTimeOfDay(*body.EndTime)
    }
    if body.DurationMin != nil {
        cur.DurationMin = *body.DurationMin
    }
    if body.ConcurrencyCap != nil {
        cur.ConcurrencyCap = *body.ConcurrencyCap
    }
    if body.IsActive != nil {
        cur.IsActive = *body.IsActive
    }
    if fields := validateWindowBounds(cur.DayOfWeek, cur.DurationMin, cur.ConcurrencyCap, cur.StartTime, cur.EndTime); len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }
    if err := h.Windows.Update(c.Request().Context(), cur); err != nil {
        if errors.Is(err, repository.ErrWindowNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "window not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update window"})
    }
    return c.JSON(http.StatusOK, toWindowResponse(cur))
}

// DeleteWindow handles DELETE /v1/windows/:id.  Refused with 409
// while PENDING or CONFIRMED bookings still reference the window.
func (h *MerchantHandler) DeleteWindow(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid window id"})
    }
    err = h.Windows.Delete(c.Request().Context(), id, m.ID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrWindowNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "window not found"})
        case errors.Is(err, repository.ErrResourceInUse):
            return c.JSON(http.StatusConflict, echo.Map{"error": "window has active bookings"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
