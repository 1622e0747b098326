package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// QueryParams carries the paging fields shared by list endpoints.
type QueryParams struct {
	PageNumber int
	PageSize   int
}

// FromEchoContext reads page/page_size query parameters, clamping them to
// sane bounds.
func FromEchoContext(c echo.Context) QueryParams {
	p := QueryParams{PageNumber: DefaultPageNumber, PageSize: DefaultPageSize}

	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageNumber = n
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageSize = n
		}
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}
