package domain

type PaginationParams struct {
	Page  int `json:"page" query:"page"`
	Limit int `json:"limit" query:"limit"`
}

// PaginatedResponse mirrors the envelope the API returns for every list
// endpoint: the items plus total/page/pages bookkeeping.
type PaginatedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func NewPaginatedResponse[T any](items []T, page, limit int, total int64) PaginatedResponse[T] {
	pages := int((total + int64(limit) - 1) / int64(limit))

	return PaginatedResponse[T]{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pages,
	}
}

func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:  1,
		Limit: 10,
	}
}

func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
