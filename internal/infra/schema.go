package infra

import (
	"fmt"

	"catalogo/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// schemaModels lists the tables in dependency order: a table only references
// tables that appear before it.
func schemaModels() []interface{} {
	return []interface{}{
		&model.Produto{},
		&model.CampoPersonalizado{},
		&model.ValorPersonalizado{},
		&model.ProdutoCampoValor{},
	}
}

// EnsureSchema creates missing tables and upgrades existing ones additively.
// It never drops or alters existing columns, so it is safe to run on every start.
//
// Databases created by older releases may lack the NF-e columns on products,
// the tipo column on custom_fields or the unique (produto_id, campo_id) index;
// each of those is added in place.
func EnsureSchema(db *gorm.DB) error {
	m := db.Migrator()
	for _, mdl := range schemaModels() {
		if !m.HasTable(mdl) {
			if err := m.CreateTable(mdl); err != nil {
				return fmt.Errorf("create table %s: %w", tableName(db, mdl), err)
			}
			log.Info().Str("table", tableName(db, mdl)).Msg("tabela criada")
			continue
		}
		if err := addMissingColumns(db, mdl); err != nil {
			return err
		}
	}

	if !m.HasIndex(&model.ProdutoCampoValor{}, model.IndiceProdutoCampo) {
		if err := m.CreateIndex(&model.ProdutoCampoValor{}, model.IndiceProdutoCampo); err != nil {
			return fmt.Errorf("create index %s: %w", model.IndiceProdutoCampo, err)
		}
		log.Info().Str("index", model.IndiceProdutoCampo).Msg("índice criado")
	}
	return nil
}

func addMissingColumns(db *gorm.DB, mdl interface{}) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(mdl); err != nil {
		return fmt.Errorf("parse model: %w", err)
	}

	m := db.Migrator()
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || field.PrimaryKey || field.DataType == "" {
			continue
		}
		if m.HasColumn(mdl, field.DBName) {
			continue
		}
		if err := m.AddColumn(mdl, field.DBName); err != nil {
			return fmt.Errorf("add column %s.%s: %w", stmt.Schema.Table, field.DBName, err)
		}
		log.Info().
			Str("table", stmt.Schema.Table).
			Str("column", field.DBName).
			Msg("coluna adicionada ao banco de dados")
	}
	return nil
}

func tableName(db *gorm.DB, mdl interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(mdl); err != nil {
		return fmt.Sprintf("%T", mdl)
	}
	return stmt.Schema.Table
}

// Columns returns the column names of a table as reported by the database.
func Columns(db *gorm.DB, table string) ([]string, error) {
	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(types))
	for _, ct := range types {
		names = append(names, ct.Name())
	}
	return names, nil
}
