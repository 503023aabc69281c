package repository

import (
	"context"

	"github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, deputado *domain.Deputado) error {
	return db.WithContext(ctx).Create(deputado).Error
}

func (r *repo) FindByNaturalID(ctx context.Context, db *gorm.DB, deputadoID int) (*domain.Deputado, error) {
	var deputado domain.Deputado
	err := db.WithContext(ctx).
		Where("deputado_id = ?", deputadoID).
		Limit(1).
		Find(&deputado).Error
	if err != nil {
		return nil, err
	}
	if deputado.ID == 0 {
		return nil, nil
	}
	return &deputado, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Deputado{}).Count(&count).Error
	return count, err
}

func filtered(ctx context.Context, db *gorm.DB, f domain.ListFilter) *gorm.DB {
	stmt := db.WithContext(ctx).Model(&domain.Deputado{})
	if f.UF != "" {
		stmt = stmt.Where("deputados.uf = ?", f.UF)
	}
	if f.Partido != "" {
		stmt = stmt.Where("deputados.partido = ?", f.Partido)
	}
	if f.Search != "" {
		stmt = stmt.Where("LOWER(deputados.nome) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	return stmt
}

func (r *repo) CountFiltered(ctx context.Context, db *gorm.DB, f domain.ListFilter) (int64, error) {
	var count int64
	err := filtered(ctx, db, f).Count(&count).Error
	return count, err
}

func orderClause(orderBy string) string {
	switch orderBy {
	case domain.OrderByPartido:
		return "deputados.partido, deputados.nome"
	case domain.OrderByUF:
		return "deputados.uf, deputados.nome"
	default:
		return "deputados.nome"
	}
}

func (r *repo) ListWithStats(ctx context.Context, db *gorm.DB, f domain.ListFilter, orderBy string, page pagination.Pagination) ([]domain.ListItem, error) {
	var items []domain.ListItem
	stmt := filtered(ctx, db, f).
		Select(`deputados.*,
			COALESCE(SUM(despesas.valor_liquido), 0) AS total_despesas,
			COUNT(despesas.id) AS total_documentos`).
		Joins("LEFT JOIN despesas ON despesas.deputado_id = deputados.id").
		Group("deputados.id").
		Order(orderClause(orderBy))
	if err := page.Apply(stmt).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountByUF(ctx context.Context, db *gorm.DB) ([]domain.GroupCount, error) {
	return r.groupCount(ctx, db, "uf")
}

func (r *repo) CountByPartido(ctx context.Context, db *gorm.DB) ([]domain.GroupCount, error) {
	return r.groupCount(ctx, db, "partido")
}

func (r *repo) groupCount(ctx context.Context, db *gorm.DB, column string) ([]domain.GroupCount, error) {
	var rows []domain.GroupCount
	err := db.WithContext(ctx).
		Model(&domain.Deputado{}).
		Select("COALESCE(" + column + ", '') AS chave, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
