package service

import (
	"context"
	"sort"

	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/internal/ranking/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Repo         domain.Repository
	DeputadoRepo deputadodomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	deputadoRepo deputadodomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("ranking.service"),
		repo:         p.Repo,
		deputadoRepo: p.DeputadoRepo,
	}
}

func (s *Service) GastosTotais(ctx context.Context, filter domain.Filter, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = domain.DefaultLimitGastosTotais
	}

	rows, err := s.repo.TotalsByDeputado(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	sortDesc(rows)
	rows = truncate(rows, limit)

	entries := make([]domain.Entry, 0, len(rows))
	for i, row := range rows {
		docs := row.Documentos
		entries = append(entries, domain.Entry{
			Posicao:         i + 1,
			Deputado:        refOf(row),
			TotalGasto:      row.Total,
			DocumentosCount: &docs,
		})
	}
	return entries, nil
}

func (s *Service) PorCategoria(ctx context.Context, filter domain.Filter, categoria string, limit int) ([]domain.Entry, string, error) {
	if limit <= 0 {
		limit = domain.DefaultLimitCategoria
	}

	if categoria == "" {
		top, err := s.repo.TopCategoria(ctx, s.db)
		if err != nil {
			return nil, "", err
		}
		categoria = top
	}
	filter.Categoria = categoria

	rows, err := s.repo.TotalsByDeputado(ctx, s.db, filter)
	if err != nil {
		return nil, "", err
	}

	sortDesc(rows)
	rows = truncate(rows, limit)

	entries := make([]domain.Entry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, domain.Entry{
			Posicao:    i + 1,
			Deputado:   refOf(row),
			TotalGasto: row.Total,
			Categoria:  categoria,
		})
	}
	return entries, categoria, nil
}

func (s *Service) PorEstadoUF(ctx context.Context, filter domain.Filter, uf string, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = domain.DefaultLimitEstado
	}
	filter.UF = uf

	rows, err := s.repo.TotalsByDeputado(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	sortDesc(rows)
	rows = truncate(rows, limit)

	entries := make([]domain.Entry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, domain.Entry{
			Posicao:    i + 1,
			Deputado:   refOf(row),
			TotalGasto: row.Total,
		})
	}
	return entries, nil
}

func (s *Service) RollupEstados(ctx context.Context, filter domain.Filter) ([]domain.GroupEntry, error) {
	totals, err := s.repo.TotalsByUF(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.deputadoRepo.CountByUF(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return rollup(totals, counts), nil
}

func (s *Service) PorPartidoEspecifico(ctx context.Context, filter domain.Filter, partido string, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = domain.DefaultLimitEstado
	}
	filter.Partido = partido

	rows, err := s.repo.TotalsByDeputado(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	sortDesc(rows)
	rows = truncate(rows, limit)

	entries := make([]domain.Entry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, domain.Entry{
			Posicao:    i + 1,
			Deputado:   refOf(row),
			TotalGasto: row.Total,
		})
	}
	return entries, nil
}

func (s *Service) RollupPartidos(ctx context.Context, filter domain.Filter) ([]domain.GroupEntry, error) {
	totals, err := s.repo.TotalsByPartido(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.deputadoRepo.CountByPartido(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return rollup(totals, counts), nil
}

func (s *Service) Eficiencia(ctx context.Context, filter domain.Filter, minDocumentos, limit int) ([]domain.Entry, error) {
	if minDocumentos <= 0 {
		minDocumentos = domain.DefaultMinDocumentos
	}
	if limit <= 0 {
		limit = domain.DefaultLimitEficiencia
	}
	filter.MinDocumentos = minDocumentos

	rows, err := s.repo.TotalsByDeputado(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	// Ascending: efficiency rewards low spend with sustained activity.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.LessThan(rows[j].Total)
	})
	rows = truncate(rows, limit)

	entries := make([]domain.Entry, 0, len(rows))
	for i, row := range rows {
		docs := row.Documentos
		porDoc := row.Total.DivRound(decimal.NewFromInt(docs), 2)
		entries = append(entries, domain.Entry{
			Posicao:           i + 1,
			Deputado:          refOf(row),
			TotalGasto:        row.Total,
			DocumentosCount:   &docs,
			GastoPorDocumento: &porDoc,
		})
	}
	return entries, nil
}

func (s *Service) ComparativoTemporal(ctx context.Context, anoAtual, anoAnterior, limit int) ([]domain.TemporalEntry, error) {
	if limit <= 0 {
		limit = domain.DefaultLimitTemporal
	}

	atual, err := s.repo.TotalsByDeputado(ctx, s.db, domain.Filter{Ano: &anoAtual})
	if err != nil {
		return nil, err
	}
	anterior, err := s.repo.TotalsByDeputado(ctx, s.db, domain.Filter{Ano: &anoAnterior})
	if err != nil {
		return nil, err
	}

	anteriorByID := make(map[int64]domain.DeputadoTotal, len(anterior))
	for _, row := range anterior {
		anteriorByID[int64(row.DeputadoID)] = row
	}

	entries := make([]domain.TemporalEntry, 0, len(atual)+len(anterior))
	seen := make(map[int64]bool, len(atual))
	for _, row := range atual {
		seen[int64(row.DeputadoID)] = true
		prior := decimal.Zero
		if p, ok := anteriorByID[int64(row.DeputadoID)]; ok {
			prior = p.Total
		}
		entries = append(entries, temporalEntry(refOf(row), row.Total, prior))
	}
	for _, row := range anterior {
		if seen[int64(row.DeputadoID)] {
			continue
		}
		entries = append(entries, temporalEntry(refOf(row), decimal.Zero, row.Total))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DiferencaAbsoluta.GreaterThan(entries[j].DiferencaAbsoluta)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func temporalEntry(ref domain.DeputadoRef, atual, anterior decimal.Decimal) domain.TemporalEntry {
	entry := domain.TemporalEntry{
		Deputado:          ref,
		GastoAtual:        atual,
		GastoAnterior:     anterior,
		DiferencaAbsoluta: atual.Sub(anterior),
	}
	if anterior.IsPositive() {
		variacao := atual.Sub(anterior).
			Div(anterior).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		entry.VariacaoPercentual = &variacao
	}
	return entry
}

func refOf(row domain.DeputadoTotal) domain.DeputadoRef {
	return domain.DeputadoRef{
		ID:      row.DeputadoID,
		Nome:    row.Nome,
		UF:      row.UF,
		Partido: row.Partido,
	}
}

func sortDesc(rows []domain.DeputadoTotal) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
}

func truncate(rows []domain.DeputadoTotal, limit int) []domain.DeputadoTotal {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func rollup(totals []domain.GroupTotal, counts []deputadodomain.GroupCount) []domain.GroupEntry {
	countByKey := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByKey[c.Chave] = c.Count
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	entries := make([]domain.GroupEntry, 0, len(totals))
	for i, t := range totals {
		count := countByKey[t.Chave]
		media := decimal.Zero
		if count > 0 {
			media = t.Total.DivRound(decimal.NewFromInt(count), 2)
		}
		entries = append(entries, domain.GroupEntry{
			Posicao:               i + 1,
			Chave:                 t.Chave,
			TotalGasto:            t.Total,
			DeputadosCount:        count,
			GastoMedioPorDeputado: media,
		})
	}
	return entries
}
