package handler // handler defines http handlers

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// The JWT middleware stores the claim value without normalizing its type, so
// every numeric representation the token library may produce is accepted.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pageParams holds normalized pagination values parsed from the query string.
type pageParams struct {
    Page     int
    PageSize int
}

// parsePage reads ?page and ?page_size with sane bounds.  Page numbering
// starts at 1; page size is clamped to [1, 100] with a default of 20.
func parsePage(c echo.Context) pageParams {
    p := pageParams{Page: 1, PageSize: 20}
    if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
        p.Page = v
    }
    if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 {
        if v > 100 {
            v = 100
        }
        p.PageSize = v
    }
    return p
}

// pageMeta is the pagination envelope attached to every list response.
type pageMeta struct {
    Total    int64 `json:"total"`
    Page     int   `json:"page"`
    PageSize int   `json:"page_size"`
    HasMore  bool  `json:"has_more"`
}

// newPageMeta computes the envelope for one returned page.
func newPageMeta(p pageParams, total int64) pageMeta {
    return pageMeta{
        Total:    total,
        Page:     p.Page,
        PageSize: p.PageSize,
        HasMore:  int64(p.Page*p.PageSize) < total,
    }
}
