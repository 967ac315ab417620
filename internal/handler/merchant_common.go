package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-table-reservation/internal/model"
    "github.com/iliyamo/venue-table-reservation/internal/repository"
)

// MerchantHandler bundles the repositories merchant staff use to
// curate inventory, policy and booking statuses.  All methods
// assume JWT authentication and the MERCHANT role check have
// already run in middleware; the merchant scope itself is resolved
// from the authenticated owner on every request.
type MerchantHandler struct {
    Merchants *repository.MerchantRepo
    Tables    *repository.TableRepo
    Windows   *repository.WindowRepo
    Policies  *repository.PolicyRepo
    Bookings  *repository.BookingRepo
}

// NewMerchantHandler constructs a MerchantHandler and panics if any
// dependency is nil.
func NewMerchantHandler(merchants *repository.MerchantRepo, tables *repository.TableRepo, windows *repository.WindowRepo, policies *repository.PolicyRepo, bookings *repository.BookingRepo) *MerchantHandler {
    if merchants == nil || tables == nil || windows == nil || policies == nil || bookings == nil {
        panic("nil repository passed to NewMerchantHandler")
    }
    return &MerchantHandler{
        Merchants: merchants,
        Tables:    tables,
        Windows:   windows,
        Policies:  policies,
        Bookings:  bookings,
    }
}

// resolveMerchant turns the authenticated caller into their
// merchant record.  It writes the error response itself and returns
// nil when resolution fails, so callers can simply bail out.
func (h *MerchantHandler) resolveMerchant(c echo.Context) *model.Merchant {
    userID, err := getUserID(c)
    if err != nil {
        _ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        return nil
    }
    m, err := h.Merchants.GetByOwner(c.Request().Context(), userID)
    if err != nil {
        if err == repository.ErrMerchantNotFound {
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "merchant not found"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        return nil
    }
    return m
}
