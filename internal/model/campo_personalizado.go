package model

// TipoManual is the default field type.
const TipoManual = "manual"

// CampoPersonalizado is an operator-defined attribute category (e.g. "Tamanho").
type CampoPersonalizado struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Nome string `gorm:"column:nome;not null"`
	Tipo string `gorm:"column:tipo;not null;default:'manual'"`
}

func (CampoPersonalizado) TableName() string { return "custom_fields" }

// ValorPersonalizado is one allowed value of a CampoPersonalizado.
type ValorPersonalizado struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	CampoID uint   `gorm:"column:campo_id;not null;index"`
	Valor   string `gorm:"column:valor;not null"`

	Campo *CampoPersonalizado `gorm:"foreignKey:CampoID"`
}

func (ValorPersonalizado) TableName() string { return "custom_values" }
