package repository

import (
	"context"

	"catalogo/internal/model"

	"gorm.io/gorm"
)

// ExclusaoCampo counts the rows removed by a cascading field delete.
type ExclusaoCampo struct {
	Valores     int64
	Atribuicoes int64
	Campos      int64
}

// CampoRepository defines CRUD operations for custom fields and their values.
type CampoRepository interface {
	Criar(ctx context.Context, c *model.CampoPersonalizado) error
	Listar(ctx context.Context) ([]model.CampoPersonalizado, error)
	ObterPorID(ctx context.Context, id uint) (*model.CampoPersonalizado, error)
	Atualizar(ctx context.Context, c *model.CampoPersonalizado) error
	// ExcluirCascata removes the field, its values and every assignment that
	// points at either, in one transaction.
	ExcluirCascata(ctx context.Context, id uint) (ExclusaoCampo, error)

	CriarValor(ctx context.Context, v *model.ValorPersonalizado) error
	ObterValorPorID(ctx context.Context, id uint) (*model.ValorPersonalizado, error)
	ListarValores(ctx context.Context, campoID uint) ([]model.ValorPersonalizado, error)
	ListarTodosValores(ctx context.Context) ([]model.ValorPersonalizado, error)
	AtualizarValor(ctx context.Context, v *model.ValorPersonalizado) error

	// Used inside transactions
	ExisteTx(tx *gorm.DB, id uint) (bool, error)
	ObterValorTx(tx *gorm.DB, id uint) (*model.ValorPersonalizado, error)
}

type campoRepository struct{ db *gorm.DB }

func NewCampoRepository(db *gorm.DB) CampoRepository {
	return &campoRepository{db: db}
}

func (r *campoRepository) Criar(ctx context.Context, c *model.CampoPersonalizado) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *campoRepository) Listar(ctx context.Context) ([]model.CampoPersonalizado, error) {
	var list []model.CampoPersonalizado
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *campoRepository) ObterPorID(ctx context.Context, id uint) (*model.CampoPersonalizado, error) {
	var c model.CampoPersonalizado
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campoRepository) Atualizar(ctx context.Context, c *model.CampoPersonalizado) error {
	return r.db.WithContext(ctx).Model(c).Updates(map[string]interface{}{
		"nome": c.Nome,
		"tipo": c.Tipo,
	}).Error
}

func (r *campoRepository) ExcluirCascata(ctx context.Context, id uint) (ExclusaoCampo, error) {
	var res ExclusaoCampo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Assignments go first: they reference both the field and its values.
		valoresDoCampo := tx.Model(&model.ValorPersonalizado{}).Select("id").Where("campo_id = ?", id)
		del := tx.Where("campo_id = ? OR valor_id IN (?)", id, valoresDoCampo).Delete(&model.ProdutoCampoValor{})
		if del.Error != nil {
			return del.Error
		}
		res.Atribuicoes = del.RowsAffected

		del = tx.Where("campo_id = ?", id).Delete(&model.ValorPersonalizado{})
		if del.Error != nil {
			return del.Error
		}
		res.Valores = del.RowsAffected

		del = tx.Delete(&model.CampoPersonalizado{}, id)
		if del.Error != nil {
			return del.Error
		}
		res.Campos = del.RowsAffected
		return nil
	})
	return res, err
}

func (r *campoRepository) CriarValor(ctx context.Context, v *model.ValorPersonalizado) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *campoRepository) ObterValorPorID(ctx context.Context, id uint) (*model.ValorPersonalizado, error) {
	return r.ObterValorTx(r.db.WithContext(ctx), id)
}

func (r *campoRepository) ListarValores(ctx context.Context, campoID uint) ([]model.ValorPersonalizado, error) {
	var list []model.ValorPersonalizado
	err := r.db.WithContext(ctx).Where("campo_id = ?", campoID).Order("id asc").Find(&list).Error
	return list, err
}

func (r *campoRepository) ListarTodosValores(ctx context.Context) ([]model.ValorPersonalizado, error) {
	var list []model.ValorPersonalizado
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *campoRepository) AtualizarValor(ctx context.Context, v *model.ValorPersonalizado) error {
	return r.db.WithContext(ctx).Model(v).Update("valor", v.Valor).Error
}

func (r *campoRepository) ExisteTx(tx *gorm.DB, id uint) (bool, error) {
	var n int64
	err := tx.Model(&model.CampoPersonalizado{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *campoRepository) ObterValorTx(tx *gorm.DB, id uint) (*model.ValorPersonalizado, error) {
	var v model.ValorPersonalizado
	if err := tx.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}
