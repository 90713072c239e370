package model

import "github.com/shopspring/decimal"

// Produto is a catalog item. Rows come from manual entry or from NF-e import
// (one row per invoice line item); the fiscal columns stay NULL otherwise.
type Produto struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Codigo    *string `gorm:"column:codigo"`
	EAN       *string `gorm:"column:ean"`
	Descricao *string `gorm:"column:descricao"`

	// Attributes feeding the commercial name
	Categoria   *string `gorm:"column:categoria"`
	Marca       *string `gorm:"column:marca"`
	Modelo      *string `gorm:"column:modelo"`
	Cor         *string `gorm:"column:cor"`
	FaixaEtaria *string `gorm:"column:faixa_etaria"`
	Genero      *string `gorm:"column:genero"`

	// NomeComercial is derived; it is only refreshed by the bulk regeneration
	// or by an explicit table save.
	NomeComercial *string `gorm:"column:nome_comercial"`

	// NF-e line item data
	NCM            *string             `gorm:"column:ncm"`
	CFOP           *string             `gorm:"column:cfop"`
	Quantidade     decimal.NullDecimal `gorm:"column:quantidade;type:decimal(15,4)"`
	PrecoUnitario  decimal.NullDecimal `gorm:"column:preco_unitario;type:decimal(15,4)"`
	PrecoTotal     decimal.NullDecimal `gorm:"column:preco_total;type:decimal(15,4)"`
	ICMSBase       decimal.NullDecimal `gorm:"column:icms_base;type:decimal(15,4)"`
	ICMSPercentual decimal.NullDecimal `gorm:"column:icms_percentual;type:decimal(15,4)"`
	ICMSValor      decimal.NullDecimal `gorm:"column:icms_valor;type:decimal(15,4)"`
	IPIBase        decimal.NullDecimal `gorm:"column:ipi_base;type:decimal(15,4)"`
	IPIPercentual  decimal.NullDecimal `gorm:"column:ipi_percentual;type:decimal(15,4)"`
	IPIValor       decimal.NullDecimal `gorm:"column:ipi_valor;type:decimal(15,4)"`
}

// TableName keeps the table name used by existing databases.
func (Produto) TableName() string { return "products" }

// Texto dereferences a nullable text column, mapping NULL to "".
func Texto(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// TextoPtr returns nil for "" so empty strings are stored as NULL.
func TextoPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
