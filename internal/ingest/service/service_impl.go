package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/camaraaberta/ceap/internal/config"
	deputadodomain "github.com/camaraaberta/ceap/internal/deputado/domain"
	despesadomain "github.com/camaraaberta/ceap/internal/despesa/domain"
	"github.com/camaraaberta/ceap/internal/ingest/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxRetainedErrors = 20
	earlyAbortErrors  = 100
	earlyAbortMinRows = 10
	formatProbeRows   = 5
)

var errValorLiquidoMissing = errors.New("valor_liquido ausente ou invalido")

type Params struct {
	fx.In

	Config       config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	DeputadoRepo deputadodomain.Repository
	DespesaRepo  despesadomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	batchSize    int
	deputadoRepo deputadodomain.Repository
	despesaRepo  despesadomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("ingest.service"),
		genID:        p.GenID,
		batchSize:    p.Config.IngestBatchSize,
		deputadoRepo: p.DeputadoRepo,
		despesaRepo:  p.DespesaRepo,
	}
}

// Process streams the CSV at path into the database. The file is read
// row by row so arbitrarily large exports never load into memory; rows
// accumulate into batches flushed transactionally.
func (s *Service) Process(ctx context.Context, path string) (domain.Result, error) {
	started := time.Now()
	var res domain.Result

	if err := s.validateFormat(path); err != nil {
		runsCompleted.WithLabelValues("invalid_format").Inc()
		return res, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	initialDeputados, err := s.deputadoRepo.Count(ctx, s.db)
	if err != nil {
		return res, err
	}
	initialDespesas, err := s.despesaRepo.Count(ctx, s.db, despesadomain.Filter{})
	if err != nil {
		return res, err
	}

	file, err := os.Open(path)
	if err != nil {
		return res, err
	}
	defer file.Close()

	reader := newCSVReader(file)
	header, err := reader.Read()
	if err != nil {
		runsCompleted.WithLabelValues("invalid_format").Inc()
		return res, fmt.Errorf("%w: cabecalho ilegivel: %v", domain.ErrInvalidFormat, err)
	}
	cols := headerIndex(header)

	resolver := newDeputadoResolver(s.log, s.genID, s.deputadoRepo)
	batch := newBatchWriter(s.log, s.batchSize)
	line := 1

	for {
		if err := ctx.Err(); err != nil {
			runsCompleted.WithLabelValues("canceled").Inc()
			return res, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			s.rejectRow(&res, line, err.Error())
			if s.tooManyEarlyErrors(res) {
				runsCompleted.WithLabelValues("aborted").Inc()
				return res, domain.ErrTooManyErrors
			}
			continue
		}

		res.ProcessedCount++
		rowsProcessed.Inc()
		row := rowView{cols: cols, fields: record}

		deputadoID, err := resolver.resolve(ctx, s.db, row)
		if err != nil {
			// Store-level failures reject the row only; the rest of the
			// file still streams.
			if !errors.Is(err, errDeputadoIDMissing) {
				s.log.Warn("deputado resolution failed",
					zap.Int("line", line),
					zap.Error(err),
				)
			}
			s.rejectRow(&res, line, err.Error())
			if s.tooManyEarlyErrors(res) {
				runsCompleted.WithLabelValues("aborted").Inc()
				return res, domain.ErrTooManyErrors
			}
			continue
		}

		despesa, err := s.buildDespesa(row, deputadoID)
		if err != nil {
			s.rejectRow(&res, line, err.Error())
			if s.tooManyEarlyErrors(res) {
				runsCompleted.WithLabelValues("aborted").Inc()
				return res, domain.ErrTooManyErrors
			}
			continue
		}

		batch.add(despesa, line)
		if batch.full() {
			s.applyFlush(ctx, batch, &res)
		}
	}

	if batch.pending() > 0 {
		s.applyFlush(ctx, batch, &res)
	}

	finalDeputados, err := s.deputadoRepo.Count(ctx, s.db)
	if err != nil {
		return res, err
	}
	finalDespesas, err := s.despesaRepo.Count(ctx, s.db, despesadomain.Filter{})
	if err != nil {
		return res, err
	}
	res.DeputadosCreated = finalDeputados - initialDeputados
	res.DespesasCreated = finalDespesas - initialDespesas

	runsCompleted.WithLabelValues("completed").Inc()
	s.log.Info("ingestion completed",
		zap.String("path", path),
		zap.Int64("processed", res.ProcessedCount),
		zap.Int64("errors", res.ErrorCount),
		zap.Int64("deputados_created", res.DeputadosCreated),
		zap.Int64("despesas_created", res.DespesasCreated),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// validateFormat reads the header and a handful of leading rows with the
// expected configuration before touching the database.
func (s *Service) validateFormat(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := newCSVReader(file)
	for i := 0; i <= formatProbeRows; i++ {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
	return nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

func (s *Service) buildDespesa(row rowView, deputadoID snowflake.ID) (*despesadomain.Despesa, error) {
	valorLiquido := parseDecimal(row.get(colValorLiquido))
	if !valorLiquido.Valid {
		return nil, errValorLiquidoMissing
	}

	now := time.Now().UTC()
	return &despesadomain.Despesa{
		ID:                s.genID.Generate(),
		DeputadoID:        deputadoID,
		Descricao:         cleanField(row.get(colDescricao)),
		Especificacao:     cleanField(row.get(colEspecificacao)),
		Fornecedor:        cleanField(row.get(colFornecedor)),
		CnpjCpfFornecedor: cleanField(row.get(colCnpjCpf)),
		NumeroDocumento:   cleanField(row.get(colNumeroDoc)),
		TipoDocumento:     parseInt(row.get(colTipoDoc)),
		DataEmissao:       parseDate(row.get(colDataEmissao)),
		ValorDocumento:    parseDecimal(row.get(colValorDocumento)),
		ValorGlosa:        parseDecimal(row.get(colValorGlosa)),
		ValorLiquido:      valorLiquido.Decimal,
		Mes:               parseInt(row.get(colMes)),
		Ano:               parseInt(row.get(colAno)),
		Parcela:           parseInt(row.get(colParcela)),
		Passageiro:        cleanField(row.get(colPassageiro)),
		Trecho:            cleanField(row.get(colTrecho)),
		Lote:              cleanField(row.get(colLote)),
		UrlDocumento:      cleanField(row.get(colUrlDocumento)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (s *Service) applyFlush(ctx context.Context, batch *batchWriter, res *domain.Result) {
	outcome := batch.flush(ctx, s.db)
	for _, failure := range outcome.Failures {
		s.rejectRow(res, failure.Line, failure.Reason)
	}
}

func (s *Service) rejectRow(res *domain.Result, line int, reason string) {
	res.ErrorCount++
	rowsRejected.Inc()
	if len(res.Errors) < maxRetainedErrors {
		res.Errors = append(res.Errors, fmt.Sprintf("linha %d: %s", line, reason))
	}
}

// tooManyEarlyErrors flags files whose leading rows are overwhelmingly
// broken, usually a wrong delimiter that slipped past the probe.
func (s *Service) tooManyEarlyErrors(res domain.Result) bool {
	succeeded := res.ProcessedCount - res.ErrorCount
	return res.ErrorCount > earlyAbortErrors && succeeded < earlyAbortMinRows
}
