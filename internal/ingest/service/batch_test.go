package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newBatchDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&despesadomain.Despesa{}))
	return conn
}

func testDespesa(id, deputadoID snowflake.ID, valor string) *despesadomain.Despesa {
	now := time.Now().UTC()
	return &despesadomain.Despesa{
		ID:           id,
		DeputadoID:   deputadoID,
		ValorLiquido: decimal.RequireFromString(valor),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestFlushDropsRecordsWithoutOwner(t *testing.T) {
	conn := newBatchDB(t)
	w := newBatchWriter(zap.NewNop(), 10)

	w.add(testDespesa(1, 100, "10.00"), 2)
	w.add(testDespesa(2, 0, "20.00"), 3)
	w.add(testDespesa(3, 100, "30.00"), 4)

	outcome := w.flush(context.Background(), conn)

	assert.Equal(t, 2, outcome.Inserted)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, 3, outcome.Failures[0].Line)
	assert.Contains(t, outcome.Failures[0].Reason, "sem deputado")
	assert.Equal(t, 0, w.pending())

	var count int64
	require.NoError(t, conn.Model(&despesadomain.Despesa{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestFlushFallbackIsolatesBadRecord(t *testing.T) {
	conn := newBatchDB(t)
	require.NoError(t, conn.Create(testDespesa(42, 100, "5.00")).Error)

	w := newBatchWriter(zap.NewNop(), 10)
	w.add(testDespesa(10, 100, "10.00"), 2)
	// Same primary key as the row already stored, so the bulk insert
	// fails and every record goes through the row-by-row retry.
	w.add(testDespesa(42, 100, "20.00"), 3)
	w.add(testDespesa(11, 100, "30.00"), 4)

	outcome := w.flush(context.Background(), conn)

	assert.Equal(t, 2, outcome.Inserted)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, 3, outcome.Failures[0].Line)

	var count int64
	require.NoError(t, conn.Model(&despesadomain.Despesa{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}
