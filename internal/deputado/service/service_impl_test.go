package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/internal/deputado/repository"
	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	despesarepository "github.com/camaraaberta/ceap/internal/despesa/repository"
	rankingrepository "github.com/camaraaberta/ceap/internal/ranking/repository"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Deputado{}, &despesadomain.Despesa{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          conn,
		Log:         zap.NewNop(),
		Repo:        repository.Provide(),
		DespesaRepo: despesarepository.Provide(),
		RankingRepo: rankingrepository.Provide(),
	})
	return svc, conn, node
}

func seedDeputado(t *testing.T, conn *gorm.DB, node *snowflake.Node, naturalID int, nome, uf, partido string) domain.Deputado {
	t.Helper()
	deputado := domain.Deputado{
		ID:         node.Generate(),
		DeputadoID: naturalID,
		Nome:       &nome,
		UF:         &uf,
		Partido:    &partido,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, conn.Create(&deputado).Error)
	return deputado
}

func seedDespesa(t *testing.T, conn *gorm.DB, node *snowflake.Node, deputadoID snowflake.ID, valor string) {
	t.Helper()
	categoria := "COMBUSTIVEL"
	despesa := despesadomain.Despesa{
		ID:           node.Generate(),
		DeputadoID:   deputadoID,
		Descricao:    &categoria,
		ValorLiquido: decimal.RequireFromString(valor),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, conn.Create(&despesa).Error)
}

func TestListWithAggregates(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	ana := seedDeputado(t, conn, node, 1001, "ANA", "SP", "AAA")
	bruno := seedDeputado(t, conn, node, 1002, "BRUNO", "RJ", "BBB")
	seedDespesa(t, conn, node, ana.ID, "100")
	seedDespesa(t, conn, node, ana.ID, "50")
	seedDespesa(t, conn, node, bruno.ID, "200")

	resp, err := svc.List(ctx, domain.ListRequest{Page: pagination.Pagination{Page: 1, PerPage: 10}})
	require.NoError(t, err)

	require.Len(t, resp.Deputados, 2)
	assert.EqualValues(t, 2, resp.Meta.TotalCount)
	// Ordered by nome by default.
	assert.Equal(t, "ANA", *resp.Deputados[0].Nome)
	assert.True(t, resp.Deputados[0].TotalDespesas.Equal(decimal.RequireFromString("150")))
	assert.EqualValues(t, 2, resp.Deputados[0].TotalDocumentos)
}

func TestListFiltersByUF(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	seedDeputado(t, conn, node, 1001, "ANA", "SP", "AAA")
	seedDeputado(t, conn, node, 1002, "BRUNO", "RJ", "BBB")

	resp, err := svc.List(ctx, domain.ListRequest{
		UF:   "RJ",
		Page: pagination.Pagination{Page: 1, PerPage: 10},
	})
	require.NoError(t, err)

	require.Len(t, resp.Deputados, 1)
	assert.Equal(t, "BRUNO", *resp.Deputados[0].Nome)
}

func TestGetByNaturalIDFlagsLargestExpense(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	ana := seedDeputado(t, conn, node, 1001, "ANA", "SP", "AAA")
	seedDespesa(t, conn, node, ana.ID, "50")
	seedDespesa(t, conn, node, ana.ID, "300")
	seedDespesa(t, conn, node, ana.ID, "100")

	detail, err := svc.GetByNaturalID(ctx, 1001)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.TotalDespesas)
	assert.True(t, detail.TotalGastos.Equal(decimal.RequireFromString("450")))
	require.NotNil(t, detail.MaiorDespesa)
	assert.True(t, detail.MaiorDespesa.ValorLiquido.Equal(decimal.RequireFromString("300")))
	require.Len(t, detail.Despesas, 3)
	assert.True(t, detail.Despesas[0].IsMaiorDespesa)
	assert.False(t, detail.Despesas[1].IsMaiorDespesa)
}

func TestGetByNaturalIDNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetByNaturalID(context.Background(), 4242)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatistics(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	ana := seedDeputado(t, conn, node, 1001, "ANA", "SP", "AAA")
	bruno := seedDeputado(t, conn, node, 1002, "BRUNO", "RJ", "BBB")
	seedDespesa(t, conn, node, ana.ID, "100")
	seedDespesa(t, conn, node, bruno.ID, "300")

	stats, err := svc.Statistics(ctx, 10)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Resumo.TotalDeputados)
	assert.True(t, stats.Resumo.TotalDespesas.Equal(decimal.RequireFromString("400")))
	assert.True(t, stats.Resumo.ValorMedioPorDeputado.Equal(decimal.RequireFromString("200")))
	assert.EqualValues(t, 1, stats.Distribuicoes.DeputadosPorUF["SP"])
	assert.True(t, stats.Distribuicoes.GastosPorUF["RJ"].Equal(decimal.RequireFromString("300")))
	require.Len(t, stats.Rankings.TopGastadores, 2)
	assert.Equal(t, "BRUNO", *stats.Rankings.TopGastadores[0].Nome)
	assert.False(t, stats.GeneratedAt.IsZero())
}
