package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Despesa is a single reimbursed expense belonging to one Deputado.
// Rows are created only by ingestion and never mutated afterwards;
// deleting a Deputado cascades to its despesas.
//
// ValorLiquido is mandatory: a source row whose net amount cannot be
// parsed is rejected during ingestion instead of being stored with a
// NULL amount.
type Despesa struct {
	ID                snowflake.ID        `gorm:"primaryKey" json:"id"`
	DeputadoID        snowflake.ID        `gorm:"column:deputado_id;not null;index" json:"deputado_id"`
	Descricao         *string             `gorm:"index" json:"descricao"`
	Especificacao     *string             `json:"especificacao"`
	Fornecedor        *string             `gorm:"index" json:"fornecedor"`
	CnpjCpfFornecedor *string             `json:"cnpj_cpf_fornecedor"`
	NumeroDocumento   *string             `json:"numero_documento"`
	TipoDocumento     *int                `json:"tipo_documento"`
	DataEmissao       *datatypes.Date     `gorm:"index" json:"data_emissao"`
	ValorDocumento    decimal.NullDecimal `gorm:"type:numeric" json:"valor_documento"`
	ValorGlosa        decimal.NullDecimal `gorm:"type:numeric" json:"valor_glosa"`
	ValorLiquido      decimal.Decimal     `gorm:"type:numeric;not null;index" json:"valor_liquido"`
	Mes               *int                `gorm:"index" json:"mes"`
	Ano               *int                `gorm:"index" json:"ano"`
	Parcela           *int                `json:"parcela"`
	Passageiro        *string             `json:"passageiro"`
	Trecho            *string             `json:"trecho"`
	Lote              *string             `json:"lote"`
	UrlDocumento      *string             `json:"url_documento"`
	CreatedAt         time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Despesa) TableName() string { return "despesas" }

// DeputadoRef is the owner slice embedded in listing payloads.
type DeputadoRef struct {
	ID      snowflake.ID `gorm:"column:dep_id" json:"id"`
	Nome    *string      `gorm:"column:dep_nome" json:"nome"`
	UF      *string      `gorm:"column:dep_uf" json:"uf"`
	Partido *string      `gorm:"column:dep_partido" json:"partido"`
}

// ListItem is a Despesa joined with its owner for listing responses.
type ListItem struct {
	Despesa  `gorm:"embedded"`
	Deputado DeputadoRef `gorm:"embedded" json:"deputado"`
}

// GroupTotal is a summed net value per grouping key.
type GroupTotal struct {
	Chave string          `gorm:"column:chave" json:"chave"`
	Total decimal.Decimal `gorm:"column:total" json:"total"`
}

// MonthTotal is a summed net value per month number.
type MonthTotal struct {
	Mes   int             `gorm:"column:mes" json:"mes"`
	Total decimal.Decimal `gorm:"column:total" json:"total"`
}
