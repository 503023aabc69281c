package service

import (
	"context"
	"fmt"

	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type rowFailure struct {
	Line   int
	Reason string
}

type flushOutcome struct {
	Inserted int
	Failures []rowFailure
}

// batchWriter buffers despesas and writes each full batch in a single
// transaction. When the bulk write fails, rows are retried one by one so a
// single bad record does not sink its whole batch.
type batchWriter struct {
	log     *zap.Logger
	size    int
	records []*despesadomain.Despesa
	lines   []int
}

func newBatchWriter(log *zap.Logger, size int) *batchWriter {
	return &batchWriter{
		log:     log,
		size:    size,
		records: make([]*despesadomain.Despesa, 0, size),
		lines:   make([]int, 0, size),
	}
}

func (w *batchWriter) add(record *despesadomain.Despesa, line int) {
	w.records = append(w.records, record)
	w.lines = append(w.lines, line)
}

func (w *batchWriter) full() bool { return len(w.records) >= w.size }

func (w *batchWriter) pending() int { return len(w.records) }

func (w *batchWriter) flush(ctx context.Context, conn *gorm.DB) flushOutcome {
	defer func() {
		w.records = w.records[:0]
		w.lines = w.lines[:0]
	}()

	var outcome flushOutcome
	if len(w.records) == 0 {
		return outcome
	}

	// Records without a resolved owner never reach the database.
	valid := make([]*despesadomain.Despesa, 0, len(w.records))
	validLines := make([]int, 0, len(w.records))
	for i, record := range w.records {
		if record.DeputadoID == 0 {
			outcome.Failures = append(outcome.Failures, rowFailure{
				Line:   w.lines[i],
				Reason: "despesa sem deputado resolvido",
			})
			continue
		}
		valid = append(valid, record)
		validLines = append(validLines, w.lines[i])
	}
	if len(valid) == 0 {
		return outcome
	}

	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(valid, 1000).Error
	})
	if err == nil {
		outcome.Inserted = len(valid)
		return outcome
	}

	w.log.Warn("bulk insert failed, retrying row by row",
		zap.Int("batch_size", len(valid)),
		zap.Error(err),
	)

	for i, record := range valid {
		if ierr := conn.WithContext(ctx).Create(record).Error; ierr != nil {
			outcome.Failures = append(outcome.Failures, rowFailure{
				Line:   validLines[i],
				Reason: fmt.Sprintf("falha ao inserir despesa: %v", ierr),
			})
			continue
		}
		outcome.Inserted++
	}
	return outcome
}
