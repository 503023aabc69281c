package domain

import (
	"context"
	"errors"
)

// Result is the terminal report of one ingestion run. Recoverable row and
// batch errors are counted here; only run-level failures surface as an
// error from Process.
type Result struct {
	ProcessedCount   int64    `json:"processed_count"`
	ErrorCount       int64    `json:"error_count"`
	Errors           []string `json:"errors"`
	DeputadosCreated int64    `json:"deputados_created"`
	DespesasCreated  int64    `json:"despesas_created"`
}

type Service interface {
	Process(ctx context.Context, path string) (Result, error)
}

var (
	// ErrInvalidFormat means the file cannot be read with the expected
	// delimiter/quote/encoding configuration. Nothing is processed.
	ErrInvalidFormat = errors.New("invalid_format")
	// ErrTooManyErrors means the error rate in the leading rows was high
	// enough to treat the whole file as malformed.
	ErrTooManyErrors = errors.New("too_many_errors")
)
