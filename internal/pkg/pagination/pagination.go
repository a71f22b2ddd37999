package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const MaxPerPage = 100

type Params struct {
	Page    int
	PerPage int
}

// New normalizes page (1-based) and per-page values.
func New(page, perPage, defaultPerPage int) Params {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// FromQuery reads ?page= and ?per_page=.
func FromQuery(c *gin.Context, defaultPerPage int) Params {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	return New(page, perPage, defaultPerPage)
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	last := 1
	if p.PerPage > 0 && total > 0 {
		last = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return Page[T]{
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PerPage:  p.PerPage,
		LastPage: last,
	}
}
