package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/payments?page=3&limit=5", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p := GetPaginationParams(c)
	assert.Equal(t, PaginationParams{Page: 3, PageSize: 5, Offset: 10}, p)

	req = httptest.NewRequest(http.MethodGet, "/v1/payments?limit=1000", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, PaginationParams{Page: 1, PageSize: 20, Offset: 0}, GetPaginationParams(c))
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, total := Window(items, PaginationParams{Page: 2, PageSize: 2, Offset: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, int64(5), total)

	page, _ = Window(items, PaginationParams{Page: 4, PageSize: 2, Offset: 6})
	assert.Empty(t, page)
}
