package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductSkuGormRepository struct {
	db *gorm.DB
}

func NewProductSkuGormRepository(db *gorm.DB) *ProductSkuGormRepository {
	return &ProductSkuGormRepository{db: db}
}

func (r *ProductSkuGormRepository) FindBySkuID(ctx context.Context, skuID int64) (model.ProductSku, error) {
	var sku model.ProductSku
	err := r.db.WithContext(ctx).Where("sku_id = ?", skuID).First(&sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductSku{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductSku{}, err
	}
	return sku, nil
}
