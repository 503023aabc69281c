package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderByNome    = "nome"
	OrderByPartido = "partido"
	OrderByUF      = "uf"
)

type ListRequest struct {
	UF      string
	Partido string
	Search  string
	OrderBy string
	Page    pagination.Pagination
}

type ListResponse struct {
	Deputados []ListItem          `json:"data"`
	Meta      pagination.PageInfo `json:"meta"`
}

// DespesaResumo is the per-expense slice of a deputado detail payload.
type DespesaResumo struct {
	ID             snowflake.ID    `json:"id"`
	DataEmissao    *datatypes.Date `json:"data_emissao"`
	Fornecedor     *string         `json:"fornecedor"`
	ValorLiquido   decimal.Decimal `json:"valor_liquido"`
	UrlDocumento   *string         `json:"url_documento"`
	Descricao      *string         `json:"descricao"`
	IsMaiorDespesa bool            `json:"is_maior_despesa"`
}

// Detail is the full deputado view: every expense sorted by value then
// date, with the largest one flagged.
type Detail struct {
	Deputado
	TotalGastos   decimal.Decimal `json:"total_gastos"`
	TotalDespesas int             `json:"total_despesas"`
	MaiorDespesa  *DespesaResumo  `json:"maior_despesa"`
	Despesas      []DespesaResumo `json:"despesas"`
}

type TopGastador struct {
	ID         snowflake.ID    `json:"id"`
	Nome       *string         `json:"nome"`
	UF         *string         `json:"uf"`
	Partido    *string         `json:"partido"`
	TotalGasto decimal.Decimal `json:"total_gasto"`
}

type StatisticsResumo struct {
	TotalDeputados        int64           `json:"total_deputados"`
	TotalDespesas         decimal.Decimal `json:"total_despesas"`
	ValorMedioPorDeputado decimal.Decimal `json:"valor_medio_por_deputado"`
}

type StatisticsDistribuicoes struct {
	DeputadosPorUF      map[string]int64           `json:"deputados_por_uf"`
	DeputadosPorPartido map[string]int64           `json:"deputados_por_partido"`
	GastosPorUF         map[string]decimal.Decimal `json:"gastos_por_uf"`
	GastosPorPartido    map[string]decimal.Decimal `json:"gastos_por_partido"`
}

type StatisticsRankings struct {
	TopGastadores []TopGastador              `json:"top_gastadores"`
	TopCategorias map[string]decimal.Decimal `json:"top_categorias"`
}

type Statistics struct {
	Resumo        StatisticsResumo        `json:"resumo"`
	Distribuicoes StatisticsDistribuicoes `json:"distribuicoes"`
	Rankings      StatisticsRankings      `json:"rankings"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByNaturalID(ctx context.Context, deputadoID int) (*Detail, error)
	Statistics(ctx context.Context, limit int) (Statistics, error)
}

var ErrNotFound = errors.New("not_found")
