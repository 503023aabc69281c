package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const listSelect = `despesas.*,
	deputados.id AS dep_id,
	deputados.nome AS dep_nome,
	deputados.uf AS dep_uf,
	deputados.partido AS dep_partido`

// base joins despesas to their owner and applies every present filter
// conjunctively. LOWER(...) LIKE is used instead of ILIKE so the same
// statement works on postgres, mysql and sqlite.
func base(ctx context.Context, db *gorm.DB, f domain.Filter) *gorm.DB {
	stmt := db.WithContext(ctx).
		Model(&domain.Despesa{}).
		Joins("JOIN deputados ON deputados.id = despesas.deputado_id")

	if f.DeputadoID != nil {
		stmt = stmt.Where("despesas.deputado_id = ?", *f.DeputadoID)
	}
	if f.UF != "" {
		stmt = stmt.Where("deputados.uf = ?", f.UF)
	}
	if f.Partido != "" {
		stmt = stmt.Where("deputados.partido = ?", f.Partido)
	}
	if f.Categoria != "" {
		stmt = stmt.Where("LOWER(despesas.descricao) LIKE LOWER(?)", "%"+f.Categoria+"%")
	}
	if f.Fornecedor != "" {
		stmt = stmt.Where("LOWER(despesas.fornecedor) LIKE LOWER(?)", "%"+f.Fornecedor+"%")
	}
	if f.Mes != nil {
		stmt = stmt.Where("despesas.mes = ?", *f.Mes)
	}
	if f.Ano != nil {
		stmt = stmt.Where("despesas.ano = ?", *f.Ano)
	}
	if f.DataInicio != nil && f.DataFim != nil {
		stmt = stmt.Where("despesas.data_emissao BETWEEN ? AND ?", *f.DataInicio, *f.DataFim)
	}
	if f.ValorMin != nil {
		stmt = stmt.Where("despesas.valor_liquido >= ?", *f.ValorMin)
	}
	if f.ValorMax != nil {
		stmt = stmt.Where("despesas.valor_liquido <= ?", *f.ValorMax)
	}
	return stmt
}

func orderClause(orderBy string) string {
	switch orderBy {
	case domain.OrderByValor:
		return "despesas.valor_liquido DESC"
	case domain.OrderByData:
		return "despesas.data_emissao DESC"
	case domain.OrderByDeputado:
		return "deputados.nome"
	case domain.OrderByCategoria:
		return "despesas.descricao"
	default:
		return "despesas.created_at DESC"
	}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, f domain.Filter, orderBy string, page pagination.Pagination) ([]domain.ListItem, error) {
	var items []domain.ListItem
	stmt := base(ctx, db, f).
		Select(listSelect).
		Order(orderClause(orderBy))
	if err := page.Apply(stmt).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, f domain.Filter) (int64, error) {
	var count int64
	err := base(ctx, db, f).Count(&count).Error
	return count, err
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.ListItem, error) {
	var item domain.ListItem
	err := db.WithContext(ctx).
		Model(&domain.Despesa{}).
		Joins("JOIN deputados ON deputados.id = despesas.deputado_id").
		Select(listSelect).
		Where("despesas.id = ?", id).
		Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) SumValorLiquido(ctx context.Context, db *gorm.DB, f domain.Filter) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := base(ctx, db, f).
		Select("SUM(despesas.valor_liquido)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repo) PluckValores(ctx context.Context, db *gorm.DB, f domain.Filter) ([]decimal.Decimal, error) {
	var valores []decimal.Decimal
	err := base(ctx, db, f).
		Pluck("despesas.valor_liquido", &valores).Error
	if err != nil {
		return nil, err
	}
	return valores, nil
}

func (r *repo) TotalsByDescricao(ctx context.Context, db *gorm.DB, f domain.Filter) ([]domain.GroupTotal, error) {
	return r.groupTotals(ctx, db, f, "despesas.descricao")
}

func (r *repo) TotalsByFornecedor(ctx context.Context, db *gorm.DB, f domain.Filter) ([]domain.GroupTotal, error) {
	return r.groupTotals(ctx, db, f, "despesas.fornecedor")
}

func (r *repo) groupTotals(ctx context.Context, db *gorm.DB, f domain.Filter, column string) ([]domain.GroupTotal, error) {
	var rows []domain.GroupTotal
	err := base(ctx, db, f).
		Select("COALESCE(" + column + ", '') AS chave, SUM(despesas.valor_liquido) AS total").
		Group(column).
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TotalsByMes(ctx context.Context, db *gorm.DB, f domain.Filter) ([]domain.MonthTotal, error) {
	var rows []domain.MonthTotal
	err := base(ctx, db, f).
		Select("despesas.mes AS mes, SUM(despesas.valor_liquido) AS total").
		Where("despesas.mes IS NOT NULL").
		Group("despesas.mes").
		Order("despesas.mes").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListByDeputado(ctx context.Context, db *gorm.DB, deputadoID snowflake.ID) ([]domain.Despesa, error) {
	var despesas []domain.Despesa
	err := db.WithContext(ctx).
		Where("deputado_id = ?", deputadoID).
		Order("valor_liquido DESC, data_emissao DESC").
		Find(&despesas).Error
	if err != nil {
		return nil, err
	}
	return despesas, nil
}

func (r *repo) LastUpdatedAt(ctx context.Context, db *gorm.DB) (*time.Time, error) {
	var last *time.Time
	err := db.WithContext(ctx).
		Model(&domain.Despesa{}).
		Select("MAX(updated_at)").
		Scan(&last).Error
	if err != nil {
		return nil, err
	}
	return last, nil
}
