package domain

import (
	"context"

	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows deputado listings. Search matches nome case
// insensitively.
type ListFilter struct {
	UF      string
	Partido string
	Search  string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, deputado *Deputado) error
	FindByNaturalID(ctx context.Context, db *gorm.DB, deputadoID int) (*Deputado, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	CountFiltered(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error)
	ListWithStats(ctx context.Context, db *gorm.DB, filter ListFilter, orderBy string, page pagination.Pagination) ([]ListItem, error)
	CountByUF(ctx context.Context, db *gorm.DB) ([]GroupCount, error)
	CountByPartido(ctx context.Context, db *gorm.DB) ([]GroupCount, error)
}
