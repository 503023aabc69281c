package repository

import (
	"context"

	"github.com/camaraaberta/ceap/internal/ranking/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func base(ctx context.Context, db *gorm.DB, f domain.Filter) *gorm.DB {
	stmt := db.WithContext(ctx).
		Table("despesas").
		Joins("JOIN deputados ON deputados.id = despesas.deputado_id")

	if f.UF != "" {
		stmt = stmt.Where("deputados.uf = ?", f.UF)
	}
	if f.Partido != "" {
		stmt = stmt.Where("deputados.partido = ?", f.Partido)
	}
	if f.Categoria != "" {
		stmt = stmt.Where("LOWER(despesas.descricao) LIKE LOWER(?)", "%"+f.Categoria+"%")
	}
	if f.Ano != nil {
		stmt = stmt.Where("despesas.ano = ?", *f.Ano)
	}
	if f.Mes != nil {
		stmt = stmt.Where("despesas.mes = ?", *f.Mes)
	}
	return stmt
}

func (r *repo) TotalsByDeputado(ctx context.Context, db *gorm.DB, f domain.Filter) ([]domain.DeputadoTotal, error) {
	stmt := base(ctx, db, f).
		Select(`deputados.id AS id,
			deputados.nome AS nome,
			deputados.uf AS uf,
			deputados.partido AS partido,
			SUM(despesas.valor_liquido) AS total,
			COUNT(despesas.id) AS documentos`).
		Group("deputados.id, deputados.nome, deputados.uf, deputados.partido")
	if f.MinDocumentos > 0 {
		stmt = stmt.Having("COUNT(despesas.id) >= ?", f.MinDocumentos)
	}

	var rows []domain.DeputadoTotal
	if err := stmt.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TotalsByUF(ctx context.Context, db *gorm.DB, f domain.Filter) ([]domain.GroupTotal, error) {
	return r.groupTotals(ctx, db, f, "deputados.uf")
}

func (r *repo) TotalsByPartido(ctx context.Context, db *gorm.DB, f domain.Filter) ([]domain.GroupTotal, error) {
	return r.groupTotals(ctx, db, f, "deputados.partido")
}

func (r *repo) groupTotals(ctx context.Context, db *gorm.DB, f domain.Filter, column string) ([]domain.GroupTotal, error) {
	var rows []domain.GroupTotal
	err := base(ctx, db, f).
		Select("COALESCE(" + column + ", '') AS chave, SUM(despesas.valor_liquido) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TopCategoria(ctx context.Context, db *gorm.DB) (string, error) {
	var row struct {
		Chave string `gorm:"column:chave"`
	}
	err := db.WithContext(ctx).
		Table("despesas").
		Select("COALESCE(despesas.descricao, '') AS chave").
		Group("despesas.descricao").
		Order("SUM(despesas.valor_liquido) DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", err
	}
	return row.Chave, nil
}
