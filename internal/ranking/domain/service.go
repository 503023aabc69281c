package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	TotalsByDeputado(ctx context.Context, db *gorm.DB, filter Filter) ([]DeputadoTotal, error)
	TotalsByUF(ctx context.Context, db *gorm.DB, filter Filter) ([]GroupTotal, error)
	TotalsByPartido(ctx context.Context, db *gorm.DB, filter Filter) ([]GroupTotal, error)
	TopCategoria(ctx context.Context, db *gorm.DB) (string, error)
}

// Default limits per ranking, matching the public API contract.
const (
	DefaultLimitGastosTotais = 50
	DefaultLimitCategoria    = 30
	DefaultLimitEstado       = 20
	DefaultLimitEficiencia   = 30
	DefaultLimitTemporal     = 50
	DefaultMinDocumentos     = 10
)

type Service interface {
	// GastosTotais ranks deputados by summed net spend, descending.
	GastosTotais(ctx context.Context, filter Filter, limit int) ([]Entry, error)
	// PorCategoria ranks within one expense category; when categoria is
	// empty the globally largest category is used. Returns the resolved
	// category alongside the entries.
	PorCategoria(ctx context.Context, filter Filter, categoria string, limit int) ([]Entry, string, error)
	// PorEstadoUF ranks deputados inside one state.
	PorEstadoUF(ctx context.Context, filter Filter, uf string, limit int) ([]Entry, error)
	// RollupEstados ranks states by total spend with member counts.
	RollupEstados(ctx context.Context, filter Filter) ([]GroupEntry, error)
	// PorPartidoEspecifico ranks deputados inside one party.
	PorPartidoEspecifico(ctx context.Context, filter Filter, partido string, limit int) ([]Entry, error)
	// RollupPartidos ranks parties by total spend with member counts.
	RollupPartidos(ctx context.Context, filter Filter) ([]GroupEntry, error)
	// Eficiencia ranks ascending by total spend among deputados with at
	// least minDocumentos documents, annotating spend per document.
	Eficiencia(ctx context.Context, filter Filter, minDocumentos, limit int) ([]Entry, error)
	// ComparativoTemporal compares per-deputado spend across two years,
	// sorted by absolute difference descending.
	ComparativoTemporal(ctx context.Context, anoAtual, anoAnterior, limit int) ([]TemporalEntry, error)
}
