package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Filter narrows ranking queries. Ano/Mes apply to despesas, UF/Partido
// to the owning deputado, Categoria is a case-insensitive substring of
// descricao. MinDocumentos excludes groups below the document-count
// threshold before ranking.
type Filter struct {
	UF            string
	Partido       string
	Categoria     string
	Ano           *int
	Mes           *int
	MinDocumentos int
}

// DeputadoTotal is one grouped-sum row keyed by deputado.
type DeputadoTotal struct {
	DeputadoID snowflake.ID    `gorm:"column:id"`
	Nome       *string         `gorm:"column:nome"`
	UF         *string         `gorm:"column:uf"`
	Partido    *string         `gorm:"column:partido"`
	Total      decimal.Decimal `gorm:"column:total"`
	Documentos int64           `gorm:"column:documentos"`
}

// GroupTotal is one grouped-sum row keyed by uf or partido.
type GroupTotal struct {
	Chave string          `gorm:"column:chave"`
	Total decimal.Decimal `gorm:"column:total"`
}

// DeputadoRef identifies a deputado inside ranking payloads.
type DeputadoRef struct {
	ID      snowflake.ID `json:"id"`
	Nome    *string      `json:"nome"`
	UF      *string      `json:"uf"`
	Partido *string      `json:"partido"`
}

// Entry is one position of a per-deputado ranking. Posicao is 1-based.
type Entry struct {
	Posicao           int              `json:"posicao"`
	Deputado          DeputadoRef      `json:"deputado"`
	TotalGasto        decimal.Decimal  `json:"total_gasto"`
	DocumentosCount   *int64           `json:"documentos_count,omitempty"`
	Categoria         string           `json:"categoria,omitempty"`
	GastoPorDocumento *decimal.Decimal `json:"gasto_por_documento,omitempty"`
}

// GroupEntry is one position of a state or party rollup.
type GroupEntry struct {
	Posicao               int             `json:"posicao"`
	Chave                 string          `json:"-"`
	TotalGasto            decimal.Decimal `json:"total_gasto"`
	DeputadosCount        int64           `json:"deputados_count"`
	GastoMedioPorDeputado decimal.Decimal `json:"gasto_medio_por_deputado"`
}

// TemporalEntry compares one deputado's spend across two years.
// VariacaoPercentual is nil when the prior-year spend is not positive.
type TemporalEntry struct {
	Deputado           DeputadoRef      `json:"deputado"`
	GastoAtual         decimal.Decimal  `json:"gasto_atual"`
	GastoAnterior      decimal.Decimal  `json:"gasto_anterior"`
	VariacaoPercentual *decimal.Decimal `json:"variacao_percentual"`
	DiferencaAbsoluta  decimal.Decimal  `json:"diferenca_absoluta"`
}
