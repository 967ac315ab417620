package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-table-reservation/internal/model"
    "github.com/iliyamo/venue-table-reservation/internal/repository"
)

// tableResponse is the JSON shape tables are rendered as.  Features
// come back as a tag array rather than the stored CSV.
type tableResponse struct {
    ID       uint64   `json:"id"`
    Name     string   `json:"name"`
    Capacity int      `json:"capacity"`
    Features []string `json:"features"`
    Status   string   `json:"status"`
}

func toTableResponse(t *model.Table) tableResponse {
    return tableResponse{
        ID:       t.ID,
        Name:     t.Name,
        Capacity: t.Capacity,
        Features: t.FeatureList(),
        Status:   t.Status,
    }
}

// ListTables handles GET /v1/tables.  It returns every table in the
// calling merchant's registry, smallest capacity first.
func (h *MerchantHandler) ListTables(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    tables, err := h.Tables.ListByMerchant(c.Request().Context(), m.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
    }
    items := make([]tableResponse, 0, len(tables))
    for i := range tables {
        items = append(items, toTableResponse(&tables[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateTable handles POST /v1/tables.  Name is required and
// capacity must lie in [1, 20].  New tables start AVAILABLE.
func (h *MerchantHandler) CreateTable(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    var body struct {
        Name     string   `json:"name"`
        Capacity int      `json:"capacity"`
        Features []string `json:"features"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    fields := map[string]string{}
    if strings.TrimSpace(body.Name) == "" {
        fields["name"] = "required"
    }
    if body.Capacity < 1 || body.Capacity > model.MaxTableCapacity {
        fields["capacity"] = "must be between 1 and " + strconv.Itoa(model.MaxTableCapacity)
    }
    if len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }
    t := &model.Table{
        MerchantID: m.ID,
        Name:       strings.TrimSpace(body.Name),
        Capacity:   body.Capacity,
        Features:   model.JoinFeatures(body.Features),
    }
    if err := h.Tables.Create(c.Request().Context(), t); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create table"})
    }
    return c.JSON(http.StatusCreated, toTableResponse(t))
}

// UpdateTable handles PATCH /v1/tables/:id.  Any subset of name,
// capacity, features and status may be supplied; omitted fields
// keep their current values.
func (h *MerchantHandler) UpdateTable(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    cur, err := h.Tables.GetByIDAndMerchant(c.Request().Context(), id, m.ID)
    if err != nil {
        if errors.Is(err, repository.ErrTableNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var body struct {
        Name     *string   `json:"name"`
        Capacity *int      `json:"capacity"`
        Features *[]string `json:"features"`
        Status   *string   `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    fields := map[string]string{}
    if body.Name != nil {
        if strings.TrimSpace(*body.Name) == "" {
            fields["name"] = "must not be empty"
        } else {
            cur.Name = strings.TrimSpace(*body.Name)
        }
    }
    if body.Capacity != nil {
        if *body.Capacity < 1 || *body.Capacity > model.MaxTableCapacity {
            fields["capacity"] = "must be between 1 and " + strconv.Itoa(model.MaxTableCapacity)
        } else {
            cur.Capacity = *body.Capacity
        }
    }
    if body.Features != nil {
        cur.Features = model.JoinFeatures(*body.Features)
    }
    if body.Status != nil {
        s := strings.ToUpper(strings.TrimSpace(*body.Status))
        if s != model.TableStatusAvailable && s != model.TableStatusUnavailable {
            fields["status"] = "must be AVAILABLE or UNAVAILABLE"
        } else {
            cur.Status = s
        }
    }
    if len(fields) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
    }
    if err := h.Tables.Update(c.Request().Context(), cur); err != nil {
        if errors.Is(err, repository.ErrTableNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update table"})
    }
    return c.JSON(http.StatusOK, toTableResponse(cur))
}

// DeleteTable handles DELETE /v1/tables/:id.  Deletion is refused
// with 409 while PENDING or CONFIRMED bookings still reference the
// table.
func (h *MerchantHandler) DeleteTable(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    err = h.Tables.Delete(c.Request().Context(), id, m.ID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrTableNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        case errors.Is(err, repository.ErrResourceInUse):
            return c.JSON(http.StatusConflict, echo.Map{"error": "table has active bookings"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
