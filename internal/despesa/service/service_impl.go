package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("despesa.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	page := req.Page.Normalize()

	total, err := s.repo.Count(ctx, s.db, req.Filter)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, err := s.repo.List(ctx, s.db, req.Filter, req.OrderBy, page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	return domain.ListResponse{
		Despesas: items,
		Meta:     pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.ListItem, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Summary(ctx context.Context, filter domain.Filter) (domain.Summary, error) {
	total, err := s.repo.SumValorLiquido(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	count, err := s.repo.Count(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	valores, err := s.repo.PluckValores(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	categorias, err := s.repo.TotalsByDescricao(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	fornecedores, err := s.repo.TotalsByFornecedor(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	meses, err := s.repo.TotalsByMes(ctx, s.db, filter)
	if err != nil {
		return domain.Summary{}, err
	}

	media := decimal.Zero
	if count > 0 {
		media = total.DivRound(decimal.NewFromInt(count), 2)
	}

	porMes := make(map[int]decimal.Decimal, len(meses))
	for _, m := range meses {
		porMes[m.Mes] = m.Total
	}

	return domain.Summary{
		TotalDespesas:        total,
		TotalDocumentos:      count,
		ValorMedio:           media,
		ValorMediano:         Median(valores),
		DespesasPorCategoria: topTotals(categorias, 10),
		DespesasPorMes:       porMes,
		FornecedoresTop:      topTotals(fornecedores, 10),
	}, nil
}

// Median returns the middle value of the sorted input; for an even count
// it is the arithmetic mean of the two middle values. Empty input yields
// zero.
func Median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

func topTotals(rows []domain.GroupTotal, limit int) map[string]decimal.Decimal {
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Chave] = row.Total
	}
	return out
}
