package model

// IndiceProdutoCampo is the unique index enforcing one current value per
// (produto, campo) pair. Upserts conflict on it.
const IndiceProdutoCampo = "idx_produto_campo"

// ProdutoCampoValor records the value chosen for a product under a custom field.
type ProdutoCampoValor struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	ProdutoID uint `gorm:"column:produto_id;not null;uniqueIndex:idx_produto_campo"`
	CampoID   uint `gorm:"column:campo_id;not null;uniqueIndex:idx_produto_campo"`
	ValorID   uint `gorm:"column:valor_id;not null"`

	Produto *Produto            `gorm:"foreignKey:ProdutoID"`
	Campo   *CampoPersonalizado `gorm:"foreignKey:CampoID"`
	Valor   *ValorPersonalizado `gorm:"foreignKey:ValorID"`
}

func (ProdutoCampoValor) TableName() string { return "product_custom_field_values" }
