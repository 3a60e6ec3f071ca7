package service

import "github.com/stemsi/teachpay-backend/internal/response"

// Page is a requested listing page. Out-of-range values are clamped.
type Page struct {
	Number  int
	PerPage int
}

func (p Page) normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
	return p
}

func (p Page) limitOffset() (int, int) {
	return p.PerPage, (p.Number - 1) * p.PerPage
}

func (p Page) pagination(total int) *response.Pagination {
	return &response.Pagination{
		Page:       p.Number,
		PerPage:    p.PerPage,
		TotalItems: total,
		TotalPages: (total + p.PerPage - 1) / p.PerPage,
	}
}
