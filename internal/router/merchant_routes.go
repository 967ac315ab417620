package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-table-reservation/internal/handler"    // merchant handlers
	"github.com/iliyamo/venue-table-reservation/internal/middleware" // JWT + role middlewares
)

// RegisterMerchant registers MERCHANT-scoped endpoints under /v1.
// All routes require a valid JWT and MERCHANT role.
func RegisterMerchant(e *echo.Echo, m *handler.MerchantHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MERCHANT"),
	)

	// ---- Merchant profile ----
	g.GET("/merchant", m.GetProfile)
	g.PATCH("/merchant", m.UpdateProfile)

	// ---- Tables ----
	g.GET("/tables", m.ListTables)
	g.POST("/tables", m.CreateTable)
	g.PUT("/tables/:id", m.UpdateTable)
	g.PATCH("/tables/:id", m.UpdateTable) // allow partial updates via PATCH as well
	g.DELETE("/tables/:id", m.DeleteTable)

	// ---- Windows ----
	g.GET("/windows", m.ListWindows) // optional ?day=0..6 filter
	g.POST("/windows", m.CreateWindow)
	g.PUT("/windows/:id", m.UpdateWindow)
	g.PATCH("/windows/:id", m.UpdateWindow)
	g.DELETE("/windows/:id", m.DeleteWindow)

	// ---- Policy ----
	g.GET("/policy", m.GetPolicy)
	g.PATCH("/policy", m.UpdatePolicy)

	// ---- Bookings ----
	g.GET("/merchant/bookings", m.ListBookings) // ?status, ?date, pagination
	g.PATCH("/merchant/bookings/:id/status", m.SetBookingStatus)
}
