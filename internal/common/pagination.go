package common

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalises page and limit: page defaults to 1 and limit to
// DefaultPageSize, limit is capped at MaxPageSize.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Metadata struct {
	CurrentPage  int  `json:"current_page,omitempty"`
	PageSize     int  `json:"page_size,omitempty"`
	FirstPage    int  `json:"first_page,omitempty"`
	LastPage     int  `json:"last_page,omitempty"`
	TotalRecords int  `json:"total_records"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

func (p Pagination) Metadata(totalRecords int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}

	last := int(math.Ceil(float64(totalRecords) / float64(p.Limit)))

	return Metadata{
		CurrentPage:  p.Page,
		PageSize:     p.Limit,
		FirstPage:    1,
		LastPage:     last,
		TotalRecords: totalRecords,
		HasNext:      p.Page < last,
		HasPrev:      p.Page > 1,
	}
}
