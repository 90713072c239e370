package repository

import (
	"context"
	"errors"

	"catalogo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AtribuicaoRepository persists product → field → value assignments.
type AtribuicaoRepository interface {
	Listar(ctx context.Context) ([]model.ProdutoCampoValor, error)
	ContarPorPar(ctx context.Context, produtoID, campoID uint) (int64, error)

	// UpsertTx inserts the assignment or replaces the value of the existing
	// (produto_id, campo_id) row. It reports whether a row already existed.
	UpsertTx(tx *gorm.DB, a *model.ProdutoCampoValor) (bool, error)

	DB() *gorm.DB
}

type atribuicaoRepo struct{ db *gorm.DB }

func NewAtribuicaoRepository(db *gorm.DB) AtribuicaoRepository { return &atribuicaoRepo{db: db} }

func (r *atribuicaoRepo) Listar(ctx context.Context) ([]model.ProdutoCampoValor, error) {
	var list []model.ProdutoCampoValor
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *atribuicaoRepo) ContarPorPar(ctx context.Context, produtoID, campoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProdutoCampoValor{}).
		Where("produto_id = ? AND campo_id = ?", produtoID, campoID).
		Count(&n).Error
	return n, err
}

func (r *atribuicaoRepo) UpsertTx(tx *gorm.DB, a *model.ProdutoCampoValor) (bool, error) {
	var existente model.ProdutoCampoValor
	err := tx.Where("produto_id = ? AND campo_id = ?", a.ProdutoID, a.CampoID).Take(&existente).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return false, err
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "produto_id"}, {Name: "campo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor_id"}),
	}).Create(a).Error
	return existente.ID != 0, err
}

func (r *atribuicaoRepo) DB() *gorm.DB { return r.db }
