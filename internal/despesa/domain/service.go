package domain

import (
	"context"
	"errors"

	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

type ListRequest struct {
	Filter  Filter
	OrderBy string
	Page    pagination.Pagination
}

type ListResponse struct {
	Despesas []ListItem          `json:"data"`
	Meta     pagination.PageInfo `json:"meta"`
}

// Summary aggregates every despesa matching the filter.
type Summary struct {
	TotalDespesas        decimal.Decimal            `json:"total_despesas"`
	TotalDocumentos      int64                      `json:"total_documentos"`
	ValorMedio           decimal.Decimal            `json:"valor_medio"`
	ValorMediano         decimal.Decimal            `json:"valor_mediano"`
	DespesasPorCategoria map[string]decimal.Decimal `json:"despesas_por_categoria"`
	DespesasPorMes       map[int]decimal.Decimal    `json:"despesas_por_mes"`
	FornecedoresTop      map[string]decimal.Decimal `json:"fornecedores_top"`
}

type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (*ListItem, error)
	Summary(ctx context.Context, filter Filter) (Summary, error)
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)
