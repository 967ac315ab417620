package handler

import (
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
)

func ctxWithQuery(query string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest("GET", "/?"+query, nil)
    return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePageDefaults(t *testing.T) {
    p := parsePage(ctxWithQuery(""))
    assert.Equal(t, 1, p.Page)
    assert.Equal(t, 20, p.PageSize)
}

func TestParsePageClampsAndIgnoresGarbage(t *testing.T) {
    p := parsePage(ctxWithQuery("page=3&page_size=500"))
    assert.Equal(t, 3, p.Page)
    assert.Equal(t, 100, p.PageSize)

    p = parsePage(ctxWithQuery("page=-1&page_size=abc"))
    assert.Equal(t, 1, p.Page)
    assert.Equal(t, 20, p.PageSize)
}

func TestNewPageMetaHasMore(t *testing.T) {
    m := newPageMeta(pageParams{Page: 1, PageSize: 20}, 45)
    assert.True(t, m.HasMore)
    assert.Equal(t, int64(45), m.Total)

    m = newPageMeta(pageParams{Page: 3, PageSize: 20}, 45)
    assert.False(t, m.HasMore, "third page of 45 items is the last")

    m = newPageMeta(pageParams{Page: 1, PageSize: 20}, 20)
    assert.False(t, m.HasMore)
}

func TestGetUserIDTypes(t *testing.T) {
    c := ctxWithQuery("")
    for _, v := range []any{uint64(7), int(7), int64(7), float64(7), "7"} {
        c.Set("user_id", v)
        got, err := getUserID(c)
        assert.NoError(t, err)
        assert.Equal(t, uint64(7), got)
    }
    c.Set("user_id", "not-a-number")
    _, err := getUserID(c)
    assert.Error(t, err)
}
