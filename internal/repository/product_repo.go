package repository

import (
	"github.com/alphadevking/mini-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByParts(phoneModel, partType, variant string) (*model.Product, error)
	Save(product *model.Product) error
	Delete(id uuid.UUID) error
	UpdateLastPurchaseCost(tx *gorm.DB, id uuid.UUID, cost float64) error
	CountTransactions(id uuid.UUID) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByParts(phoneModel, partType, variant string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product,
		"phone_model = ? AND part_type = ? AND variant = ?",
		phoneModel, partType, variant,
	).Error
	return &product, err
}

func (r *productRepo) Save(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// UpdateLastPurchaseCost accepts a *gorm.DB (tx) so it can run inside the
// same transaction as the purchase insert it mirrors.
func (r *productRepo) UpdateLastPurchaseCost(tx *gorm.DB, id uuid.UUID, cost float64) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("last_purchase_cost", cost).Error
}

func (r *productRepo) CountTransactions(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Transaction{}).
		Where("product_id = ?", id).
		Count(&count).Error
	return count, err
}
