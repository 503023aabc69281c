package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	"github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/camaraaberta/ceap/internal/despesa/repository"
	"github.com/camaraaberta/ceap/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMedian(t *testing.T) {
	dec := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name   string
		values []decimal.Decimal
		want   string
	}{
		{name: "empty", values: nil, want: "0"},
		{name: "single", values: []decimal.Decimal{dec("7")}, want: "7"},
		{name: "odd count", values: []decimal.Decimal{dec("30"), dec("10"), dec("20")}, want: "20"},
		{name: "even count", values: []decimal.Decimal{dec("40"), dec("10"), dec("30"), dec("20")}, want: "25"},
		{name: "even count fractional", values: []decimal.Decimal{dec("10"), dec("15")}, want: "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Median(tt.values)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&deputadodomain.Deputado{}, &domain.Despesa{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, conn, node
}

func seedDeputado(t *testing.T, conn *gorm.DB, node *snowflake.Node, naturalID int, nome, uf string) deputadodomain.Deputado {
	t.Helper()
	deputado := deputadodomain.Deputado{
		ID:         node.Generate(),
		DeputadoID: naturalID,
		Nome:       &nome,
		UF:         &uf,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, conn.Create(&deputado).Error)
	return deputado
}

func seedDespesa(t *testing.T, conn *gorm.DB, node *snowflake.Node, deputadoID snowflake.ID, categoria, valor string) domain.Despesa {
	t.Helper()
	despesa := domain.Despesa{
		ID:           node.Generate(),
		DeputadoID:   deputadoID,
		Descricao:    &categoria,
		ValorLiquido: decimal.RequireFromString(valor),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, conn.Create(&despesa).Error)
	return despesa
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	sp := seedDeputado(t, conn, node, 1001, "FULANO", "SP")
	rj := seedDeputado(t, conn, node, 1002, "BELTRANA", "RJ")
	seedDespesa(t, conn, node, sp.ID, "COMBUSTIVEL", "100")
	seedDespesa(t, conn, node, sp.ID, "ALIMENTACAO", "50")
	seedDespesa(t, conn, node, rj.ID, "COMBUSTIVEL", "200")

	resp, err := svc.List(ctx, domain.ListRequest{
		Filter: domain.Filter{UF: "SP"},
		Page:   pagination.Pagination{Page: 1, PerPage: 1},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, resp.Meta.TotalCount)
	assert.EqualValues(t, 2, resp.Meta.TotalPages)
	require.Len(t, resp.Despesas, 1)
	assert.Equal(t, sp.ID, resp.Despesas[0].Deputado.ID)
}

func TestGetByID(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	deputado := seedDeputado(t, conn, node, 1001, "FULANO", "SP")
	despesa := seedDespesa(t, conn, node, deputado.ID, "COMBUSTIVEL", "100")

	item, err := svc.GetByID(ctx, despesa.ID.String())
	require.NoError(t, err)
	assert.Equal(t, despesa.ID, item.ID)
	assert.Equal(t, deputado.ID, item.Deputado.ID)

	_, err = svc.GetByID(ctx, "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummary(t *testing.T) {
	svc, conn, node := newTestService(t)
	ctx := context.Background()

	deputado := seedDeputado(t, conn, node, 1001, "FULANO", "SP")
	seedDespesa(t, conn, node, deputado.ID, "COMBUSTIVEL", "100")
	seedDespesa(t, conn, node, deputado.ID, "COMBUSTIVEL", "200")
	seedDespesa(t, conn, node, deputado.ID, "ALIMENTACAO", "60")

	summary, err := svc.Summary(ctx, domain.Filter{})
	require.NoError(t, err)

	assert.True(t, summary.TotalDespesas.Equal(decimal.RequireFromString("360")))
	assert.EqualValues(t, 3, summary.TotalDocumentos)
	assert.True(t, summary.ValorMedio.Equal(decimal.RequireFromString("120")))
	assert.True(t, summary.ValorMediano.Equal(decimal.RequireFromString("100")))
	assert.True(t, summary.DespesasPorCategoria["COMBUSTIVEL"].Equal(decimal.RequireFromString("300")))
	assert.True(t, summary.DespesasPorCategoria["ALIMENTACAO"].Equal(decimal.RequireFromString("60")))
}
