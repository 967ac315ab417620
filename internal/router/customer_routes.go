package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-table-reservation/internal/handler"
	"github.com/iliyamo/venue-table-reservation/internal/middleware"
)

// RegisterCustomer registers the booking endpoints under /v1.  All routes
// require a valid JWT; both roles are accepted since merchant staff also
// book tables as guests elsewhere.  Callers can create bookings, look them
// up by confirmation code, modify editable fields, cancel within the
// policy's cutoff and list their own bookings.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "MERCHANT"),
	)
	// Note: GET /v1/merchants/:id/availability is registered on the public
	// router so that guests can check open windows before signing up.
	// Customer-specific endpoints begin here.
	g.POST("/bookings", h.CreateBooking)
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/bookings/code/:code", h.GetBookingByCode)
	g.PATCH("/bookings/:id", h.ModifyBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
}
