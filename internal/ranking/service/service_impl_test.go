package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/internal/ranking/domain"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubRepo struct {
	totalsByYear map[int][]domain.DeputadoTotal
	totals       []domain.DeputadoTotal
	ufTotals     []domain.GroupTotal
	partyTotals  []domain.GroupTotal
	topCategoria string

	lastFilter domain.Filter
}

func (s *stubRepo) TotalsByDeputado(_ context.Context, _ *gorm.DB, f domain.Filter) ([]domain.DeputadoTotal, error) {
	s.lastFilter = f
	if f.Ano != nil && s.totalsByYear != nil {
		return s.totalsByYear[*f.Ano], nil
	}
	if f.MinDocumentos > 0 {
		var out []domain.DeputadoTotal
		for _, row := range s.totals {
			if row.Documentos >= int64(f.MinDocumentos) {
				out = append(out, row)
			}
		}
		return out, nil
	}
	return s.totals, nil
}

func (s *stubRepo) TotalsByUF(context.Context, *gorm.DB, domain.Filter) ([]domain.GroupTotal, error) {
	return s.ufTotals, nil
}

func (s *stubRepo) TotalsByPartido(context.Context, *gorm.DB, domain.Filter) ([]domain.GroupTotal, error) {
	return s.partyTotals, nil
}

func (s *stubRepo) TopCategoria(context.Context, *gorm.DB) (string, error) {
	return s.topCategoria, nil
}

type stubDeputadoRepo struct {
	ufCounts    []deputadodomain.GroupCount
	partyCounts []deputadodomain.GroupCount
}

func (s *stubDeputadoRepo) Insert(context.Context, *gorm.DB, *deputadodomain.Deputado) error {
	return nil
}

func (s *stubDeputadoRepo) FindByNaturalID(context.Context, *gorm.DB, int) (*deputadodomain.Deputado, error) {
	return nil, nil
}

func (s *stubDeputadoRepo) Count(context.Context, *gorm.DB) (int64, error) { return 0, nil }

func (s *stubDeputadoRepo) CountFiltered(context.Context, *gorm.DB, deputadodomain.ListFilter) (int64, error) {
	return 0, nil
}

func (s *stubDeputadoRepo) ListWithStats(context.Context, *gorm.DB, deputadodomain.ListFilter, string, pagination.Pagination) ([]deputadodomain.ListItem, error) {
	return nil, nil
}

func (s *stubDeputadoRepo) CountByUF(context.Context, *gorm.DB) ([]deputadodomain.GroupCount, error) {
	return s.ufCounts, nil
}

func (s *stubDeputadoRepo) CountByPartido(context.Context, *gorm.DB) ([]deputadodomain.GroupCount, error) {
	return s.partyCounts, nil
}

func newStubService(repo *stubRepo, deputadoRepo *stubDeputadoRepo) domain.Service {
	if deputadoRepo == nil {
		deputadoRepo = &stubDeputadoRepo{}
	}
	return New(Params{
		DB:           nil,
		Log:          zap.NewNop(),
		Repo:         repo,
		DeputadoRepo: deputadoRepo,
	})
}

func total(id int64, nome string, valor string, documentos int64) domain.DeputadoTotal {
	return domain.DeputadoTotal{
		DeputadoID: snowflake.ID(id),
		Nome:       &nome,
		Total:      decimal.RequireFromString(valor),
		Documentos: documentos,
	}
}

func TestGastosTotaisOrdersAndLimits(t *testing.T) {
	repo := &stubRepo{totals: []domain.DeputadoTotal{
		total(1, "A", "100", 2),
		total(2, "B", "300", 5),
		total(3, "C", "200", 3),
	}}
	svc := newStubService(repo, nil)

	entries, err := svc.GastosTotais(context.Background(), domain.Filter{}, 2)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Posicao)
	assert.Equal(t, snowflake.ID(2), entries[0].Deputado.ID)
	assert.Equal(t, 2, entries[1].Posicao)
	assert.Equal(t, snowflake.ID(3), entries[1].Deputado.ID)
	require.NotNil(t, entries[0].DocumentosCount)
	assert.EqualValues(t, 5, *entries[0].DocumentosCount)
}

func TestPorCategoriaResolvesTopCategoria(t *testing.T) {
	repo := &stubRepo{
		totals:       []domain.DeputadoTotal{total(1, "A", "100", 2)},
		topCategoria: "COMBUSTIVEL",
	}
	svc := newStubService(repo, nil)

	entries, categoria, err := svc.PorCategoria(context.Background(), domain.Filter{}, "", 10)
	require.NoError(t, err)

	assert.Equal(t, "COMBUSTIVEL", categoria)
	assert.Equal(t, "COMBUSTIVEL", repo.lastFilter.Categoria)
	require.Len(t, entries, 1)
	assert.Equal(t, "COMBUSTIVEL", entries[0].Categoria)
}

func TestEficienciaAscendingWithPerDocumentSpend(t *testing.T) {
	repo := &stubRepo{totals: []domain.DeputadoTotal{
		total(1, "A", "1500", 5),
		total(2, "B", "500", 4),
		total(3, "C", "900", 2),
	}}
	svc := newStubService(repo, nil)

	entries, err := svc.Eficiencia(context.Background(), domain.Filter{}, 3, 10)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, snowflake.ID(2), entries[0].Deputado.ID)
	assert.Equal(t, snowflake.ID(1), entries[1].Deputado.ID)
	require.NotNil(t, entries[1].GastoPorDocumento)
	assert.True(t, entries[1].GastoPorDocumento.Equal(decimal.RequireFromString("300")))
	assert.Equal(t, 3, repo.lastFilter.MinDocumentos)
}

func TestComparativoTemporal(t *testing.T) {
	repo := &stubRepo{totalsByYear: map[int][]domain.DeputadoTotal{
		2023: {
			total(1, "A", "200", 2),
			total(2, "B", "50", 1),
		},
		2022: {
			total(1, "A", "100", 2),
			total(3, "C", "80", 1),
		},
	}}
	svc := newStubService(repo, nil)

	entries, err := svc.ComparativoTemporal(context.Background(), 2023, 2022, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, snowflake.ID(1), entries[0].Deputado.ID)
	require.NotNil(t, entries[0].VariacaoPercentual)
	assert.True(t, entries[0].VariacaoPercentual.Equal(decimal.RequireFromString("100")))
	assert.True(t, entries[0].DiferencaAbsoluta.Equal(decimal.RequireFromString("100")))

	assert.Equal(t, snowflake.ID(2), entries[1].Deputado.ID)
	assert.Nil(t, entries[1].VariacaoPercentual)

	assert.Equal(t, snowflake.ID(3), entries[2].Deputado.ID)
	assert.True(t, entries[2].GastoAtual.IsZero())
	assert.True(t, entries[2].DiferencaAbsoluta.Equal(decimal.RequireFromString("-80")))
}

func TestRollupEstados(t *testing.T) {
	repo := &stubRepo{ufTotals: []domain.GroupTotal{
		{Chave: "SP", Total: decimal.RequireFromString("100")},
		{Chave: "RJ", Total: decimal.RequireFromString("300")},
	}}
	deputadoRepo := &stubDeputadoRepo{ufCounts: []deputadodomain.GroupCount{
		{Chave: "SP", Count: 4},
	}}
	svc := newStubService(repo, deputadoRepo)

	entries, err := svc.RollupEstados(context.Background(), domain.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Posicao)
	assert.Equal(t, "RJ", entries[0].Chave)
	assert.True(t, entries[0].GastoMedioPorDeputado.IsZero())

	assert.Equal(t, "SP", entries[1].Chave)
	assert.EqualValues(t, 4, entries[1].DeputadosCount)
	assert.True(t, entries[1].GastoMedioPorDeputado.Equal(decimal.RequireFromString("25")))
}
