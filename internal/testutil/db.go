// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"catalogo/internal/infra"
	"catalogo/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a fresh SQLite database in a temp dir with the schema in place.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase("sqlite", filepath.Join(t.TempDir(), "catalogo.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// SeedProduto inserts a product with the given attributes.
func SeedProduto(t *testing.T, db *gorm.DB, p model.Produto) model.Produto {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}

// SeedCampo inserts a field and its values, returning the field and the
// values in insertion order.
func SeedCampo(t *testing.T, db *gorm.DB, nome string, valores ...string) (model.CampoPersonalizado, []model.ValorPersonalizado) {
	t.Helper()
	c := model.CampoPersonalizado{Nome: nome, Tipo: model.TipoManual}
	require.NoError(t, db.Create(&c).Error)
	out := make([]model.ValorPersonalizado, 0, len(valores))
	for _, v := range valores {
		vp := model.ValorPersonalizado{CampoID: c.ID, Valor: v}
		require.NoError(t, db.Create(&vp).Error)
		out = append(out, vp)
	}
	return c, out
}

// Count returns the number of rows of the model's table.
func Count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
