package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Deputado is the parliamentarian expenses are attributed to. DeputadoID
// is the natural id from the source files and is immutable once assigned;
// Nome may be blank in the source and is tolerated.
type Deputado struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	DeputadoID          int          `gorm:"column:deputado_id;uniqueIndex" json:"deputado_id"`
	Nome                *string      `gorm:"index" json:"nome"`
	CPF                 *string      `gorm:"column:cpf" json:"cpf"`
	CarteiraParlamentar *string      `json:"carteira_parlamentar"`
	UF                  *string      `gorm:"column:uf;index" json:"uf"`
	Partido             *string      `gorm:"index" json:"partido"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Deputado) TableName() string { return "deputados" }

// ListItem is a Deputado annotated with its expense aggregates.
type ListItem struct {
	Deputado        `gorm:"embedded"`
	TotalDespesas   decimal.Decimal `gorm:"column:total_despesas" json:"total_despesas"`
	TotalDocumentos int64           `gorm:"column:total_documentos" json:"total_documentos"`
}

// GroupCount is a count of deputados per uf or partido.
type GroupCount struct {
	Chave string `gorm:"column:chave"`
	Count int64  `gorm:"column:count"`
}
