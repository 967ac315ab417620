package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
)

// GetProfile handles GET /v1/merchant and returns the caller's
// merchant record.
func (h *MerchantHandler) GetProfile(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    return c.JSON(http.StatusOK, toMerchantResponse(m))
}

// UpdateProfile handles PATCH /v1/merchant.  Only the display name
// is editable; status changes are administrative.
func (h *MerchantHandler) UpdateProfile(c echo.Context) error {
    m := h.resolveMerchant(c)
    if m == nil {
        return nil
    }
    var body struct {
        Name string `json:"name"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": map[string]string{"name": "required"}})
    }
    if err := h.Merchants.UpdateName(c.Request().Context(), m.OwnerID, name); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update merchant"})
    }
    m.Name = name
    return c.JSON(http.StatusOK, toMerchantResponse(m))
}
