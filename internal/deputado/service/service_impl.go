package service

import (
	"context"
	"sort"
	"time"

	"github.com/camaraaberta/ceap/internal/deputado/domain"
	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	rankingdomain "github.com/camaraaberta/ceap/internal/ranking/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Repo        domain.Repository
	DespesaRepo despesadomain.Repository
	RankingRepo rankingdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	despesaRepo despesadomain.Repository
	rankingRepo rankingdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("deputado.service"),
		repo:        p.Repo,
		despesaRepo: p.DespesaRepo,
		rankingRepo: p.RankingRepo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	page := req.Page.Normalize()
	filter := domain.ListFilter{
		UF:      req.UF,
		Partido: req.Partido,
		Search:  req.Search,
	}

	total, err := s.repo.CountFiltered(ctx, s.db, filter)
	if err != nil {
		return domain.ListResponse{}, err
	}

	items, err := s.repo.ListWithStats(ctx, s.db, filter, req.OrderBy, page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	return domain.ListResponse{
		Deputados: items,
		Meta:      pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) GetByNaturalID(ctx context.Context, deputadoID int) (*domain.Detail, error) {
	deputado, err := s.repo.FindByNaturalID(ctx, s.db, deputadoID)
	if err != nil {
		return nil, err
	}
	if deputado == nil {
		return nil, domain.ErrNotFound
	}

	despesas, err := s.despesaRepo.ListByDeputado(ctx, s.db, deputado.ID)
	if err != nil {
		return nil, err
	}

	detail := &domain.Detail{
		Deputado:      *deputado,
		TotalGastos:   decimal.Zero,
		TotalDespesas: len(despesas),
		Despesas:      make([]domain.DespesaResumo, 0, len(despesas)),
	}

	for i, despesa := range despesas {
		resumo := domain.DespesaResumo{
			ID:             despesa.ID,
			DataEmissao:    despesa.DataEmissao,
			Fornecedor:     despesa.Fornecedor,
			ValorLiquido:   despesa.ValorLiquido,
			UrlDocumento:   despesa.UrlDocumento,
			Descricao:      despesa.Descricao,
			IsMaiorDespesa: i == 0,
		}
		detail.TotalGastos = detail.TotalGastos.Add(despesa.ValorLiquido)
		detail.Despesas = append(detail.Despesas, resumo)
		if i == 0 {
			maior := resumo
			detail.MaiorDespesa = &maior
		}
	}

	return detail, nil
}

func (s *Service) Statistics(ctx context.Context, limit int) (domain.Statistics, error) {
	if limit <= 0 {
		limit = 10
	}

	totalDeputados, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return domain.Statistics{}, err
	}

	totalDespesas, err := s.despesaRepo.SumValorLiquido(ctx, s.db, despesadomain.Filter{})
	if err != nil {
		return domain.Statistics{}, err
	}

	porUF, err := s.repo.CountByUF(ctx, s.db)
	if err != nil {
		return domain.Statistics{}, err
	}
	porPartido, err := s.repo.CountByPartido(ctx, s.db)
	if err != nil {
		return domain.Statistics{}, err
	}

	gastosUF, err := s.rankingRepo.TotalsByUF(ctx, s.db, rankingdomain.Filter{})
	if err != nil {
		return domain.Statistics{}, err
	}
	gastosPartido, err := s.rankingRepo.TotalsByPartido(ctx, s.db, rankingdomain.Filter{})
	if err != nil {
		return domain.Statistics{}, err
	}

	totais, err := s.rankingRepo.TotalsByDeputado(ctx, s.db, rankingdomain.Filter{})
	if err != nil {
		return domain.Statistics{}, err
	}
	sort.SliceStable(totais, func(i, j int) bool {
		return totais[i].Total.GreaterThan(totais[j].Total)
	})
	if len(totais) > limit {
		totais = totais[:limit]
	}
	topGastadores := make([]domain.TopGastador, 0, len(totais))
	for _, row := range totais {
		topGastadores = append(topGastadores, domain.TopGastador{
			ID:         row.DeputadoID,
			Nome:       row.Nome,
			UF:         row.UF,
			Partido:    row.Partido,
			TotalGasto: row.Total,
		})
	}

	categorias, err := s.despesaRepo.TotalsByDescricao(ctx, s.db, despesadomain.Filter{})
	if err != nil {
		return domain.Statistics{}, err
	}
	if len(categorias) > 10 {
		categorias = categorias[:10]
	}
	topCategorias := make(map[string]decimal.Decimal, len(categorias))
	for _, c := range categorias {
		topCategorias[c.Chave] = c.Total
	}

	valorMedio := decimal.Zero
	if totalDeputados > 0 {
		valorMedio = totalDespesas.DivRound(decimal.NewFromInt(totalDeputados), 2)
	}

	return domain.Statistics{
		Resumo: domain.StatisticsResumo{
			TotalDeputados:        totalDeputados,
			TotalDespesas:         totalDespesas,
			ValorMedioPorDeputado: valorMedio,
		},
		Distribuicoes: domain.StatisticsDistribuicoes{
			DeputadosPorUF:      groupCountMap(porUF),
			DeputadosPorPartido: groupCountMap(porPartido),
			GastosPorUF:         groupTotalMap(gastosUF),
			GastosPorPartido:    groupTotalMap(gastosPartido),
		},
		Rankings: domain.StatisticsRankings{
			TopGastadores: topGastadores,
			TopCategorias: topCategorias,
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func groupCountMap(rows []domain.GroupCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Chave] = row.Count
	}
	return out
}

func groupTotalMap(rows []rankingdomain.GroupTotal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Chave] = row.Total
	}
	return out
}
