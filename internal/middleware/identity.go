package middleware

// identity.go defines helper functions shared across middleware files. It
// provides a userID extraction function that reads the "user_id" value the
// JWT middleware stores in the Echo context. When no user is authenticated
// "guest" is returned, so unauthenticated traffic shares one bucket per IP.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the request context. JWT claims
// decode numeric subjects as float64, so both numeric and string forms are
// handled. It returns "guest" when no user is authenticated.
func userID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    case uint64:
        return strconv.FormatUint(v, 10)
    }
    return "guest"
}
