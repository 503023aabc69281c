package pagination

import "gorm.io/gorm"

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Pagination is a page-numbered paging request. PerPage is clamped to
// MaxPerPage by Normalize.
type Pagination struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=20"`
}

// PageInfo describes one page of a result set.
type PageInfo struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
}

// Normalize clamps the request to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the normalized request.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Apply adds LIMIT/OFFSET to a gorm statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Limit(p.PerPage).Offset(p.Offset())
}

// BuildPageInfo computes page metadata, with total_pages = ceil(total/per_page).
func BuildPageInfo(p Pagination, total int64) PageInfo {
	pages := int(total / int64(p.PerPage))
	if total%int64(p.PerPage) != 0 {
		pages++
	}
	return PageInfo{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		TotalCount:  total,
		TotalPages:  pages,
	}
}
