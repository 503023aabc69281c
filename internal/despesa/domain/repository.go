package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Filter is the conjunctive filter set shared by listing, summary and
// aggregation queries. Zero values mean "not filtered".
type Filter struct {
	DeputadoID *snowflake.ID
	UF         string
	Partido    string
	Categoria  string
	Fornecedor string
	Mes        *int
	Ano        *int
	DataInicio *time.Time
	DataFim    *time.Time
	ValorMin   *decimal.Decimal
	ValorMax   *decimal.Decimal
}

// Sort keys accepted by List.
const (
	OrderByValor     = "valor"
	OrderByData      = "data"
	OrderByDeputado  = "deputado"
	OrderByCategoria = "categoria"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, filter Filter, orderBy string, page pagination.Pagination) ([]ListItem, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ListItem, error)
	SumValorLiquido(ctx context.Context, db *gorm.DB, filter Filter) (decimal.Decimal, error)
	PluckValores(ctx context.Context, db *gorm.DB, filter Filter) ([]decimal.Decimal, error)
	TotalsByDescricao(ctx context.Context, db *gorm.DB, filter Filter) ([]GroupTotal, error)
	TotalsByFornecedor(ctx context.Context, db *gorm.DB, filter Filter) ([]GroupTotal, error)
	TotalsByMes(ctx context.Context, db *gorm.DB, filter Filter) ([]MonthTotal, error)
	ListByDeputado(ctx context.Context, db *gorm.DB, deputadoID snowflake.ID) ([]Despesa, error)
	LastUpdatedAt(ctx context.Context, db *gorm.DB) (*time.Time, error)
}
