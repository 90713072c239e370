package repository

import (
	"context"

	"catalogo/internal/model"

	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uint) (*model.Produto, error)
	List(ctx context.Context) ([]model.Produto, error)

	// Used inside transactions; callers pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Produto) error
	ExistsTx(tx *gorm.DB, id uint) (bool, error)
	ListTx(tx *gorm.DB) ([]model.Produto, error)
	UpdateNomeComercialTx(tx *gorm.DB, id uint, nome string) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uint) (*model.Produto, error) {
	var p model.Produto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produtoRepo) List(ctx context.Context) ([]model.Produto, error) {
	return r.ListTx(r.db.WithContext(ctx))
}

func (r *produtoRepo) CreateTx(tx *gorm.DB, p *model.Produto) error {
	return tx.Create(p).Error
}

func (r *produtoRepo) ExistsTx(tx *gorm.DB, id uint) (bool, error) {
	var n int64
	err := tx.Model(&model.Produto{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *produtoRepo) ListTx(tx *gorm.DB) ([]model.Produto, error) {
	var produtos []model.Produto
	err := tx.Order("id ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) UpdateNomeComercialTx(tx *gorm.DB, id uint, nome string) (int64, error) {
	res := tx.Model(&model.Produto{}).Where("id = ?", id).Update("nome_comercial", nome)
	return res.RowsAffected, res.Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
