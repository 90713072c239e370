package infra_test

import (
	"path/filepath"
	"testing"

	"catalogo/internal/infra"
	"catalogo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var legacySchema = []string{
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		codigo TEXT, ean TEXT, descricao TEXT,
		categoria TEXT, marca TEXT, modelo TEXT, cor TEXT,
		faixa_etaria TEXT, genero TEXT, nome_comercial TEXT
	)`,
	`CREATE TABLE custom_fields (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL
	)`,
	`CREATE TABLE custom_values (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campo_id INTEGER NOT NULL,
		valor TEXT NOT NULL,
		FOREIGN KEY (campo_id) REFERENCES custom_fields(id)
	)`,
	`CREATE TABLE product_custom_field_values (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		produto_id INTEGER NOT NULL,
		campo_id INTEGER NOT NULL,
		valor_id INTEGER NOT NULL
	)`,
	`INSERT INTO products (codigo, marca) VALUES ('LEG-1', 'Acme')`,
	`INSERT INTO custom_fields (nome) VALUES ('Tamanho')`,
}

func openSQLite(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "catalogo.db")
	db, err := infra.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, path
}

func TestEnsureSchema_BancoNovo(t *testing.T) {
	db, path := openSQLite(t)
	require.NoError(t, infra.EnsureSchema(db))
	assert.FileExists(t, path)

	m := db.Migrator()
	for _, tbl := range []string{"products", "custom_fields", "custom_values", "product_custom_field_values"} {
		assert.True(t, m.HasTable(tbl), tbl)
	}
	assert.True(t, m.HasIndex(&model.ProdutoCampoValor{}, model.IndiceProdutoCampo))

	cols, err := infra.Columns(db, "products")
	require.NoError(t, err)
	assert.Subset(t, cols, []string{"nome_comercial", "ncm", "cfop", "quantidade", "icms_valor", "ipi_valor"})
}

func TestEnsureSchema_Idempotente(t *testing.T) {
	db, _ := openSQLite(t)
	require.NoError(t, infra.EnsureSchema(db))

	require.NoError(t, db.Create(&model.Produto{Codigo: strPtr("A")}).Error)
	before, err := infra.Columns(db, "products")
	require.NoError(t, err)

	require.NoError(t, infra.EnsureSchema(db))
	after, err := infra.Columns(db, "products")
	require.NoError(t, err)

	assert.Equal(t, before, after)
	var n int64
	require.NoError(t, db.Model(&model.Produto{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestEnsureSchema_AtualizaBancoLegado(t *testing.T) {
	db, _ := openSQLite(t)
	for _, stmt := range legacySchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	require.NoError(t, infra.EnsureSchema(db))

	cols, err := infra.Columns(db, "products")
	require.NoError(t, err)
	assert.Subset(t, cols, []string{"codigo", "ncm", "preco_unitario", "ipi_percentual"})

	// Existing rows keep their data; new columns are NULL
	var p model.Produto
	require.NoError(t, db.Where("codigo = ?", "LEG-1").First(&p).Error)
	assert.Equal(t, "Acme", model.Texto(p.Marca))
	assert.False(t, p.PrecoUnitario.Valid)

	var c model.CampoPersonalizado
	require.NoError(t, db.First(&c).Error)
	assert.Equal(t, model.TipoManual, c.Tipo)

	// The unique (produto_id, campo_id) index now exists
	v := model.ValorPersonalizado{CampoID: c.ID, Valor: "P"}
	require.NoError(t, db.Create(&v).Error)
	require.NoError(t, db.Create(&model.ProdutoCampoValor{ProdutoID: p.ID, CampoID: c.ID, ValorID: v.ID}).Error)
	err = db.Create(&model.ProdutoCampoValor{ProdutoID: p.ID, CampoID: c.ID, ValorID: v.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestForeignKeysAtivas(t *testing.T) {
	db, _ := openSQLite(t)
	require.NoError(t, infra.EnsureSchema(db))

	err := db.Create(&model.ValorPersonalizado{CampoID: 999, Valor: "órfão"}).Error
	assert.Error(t, err)
}

func TestOpen_DriverDesconhecido(t *testing.T) {
	_, err := infra.Open("mysql", "x")
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
