package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type StockGormRepository struct {
	db *gorm.DB
}

func NewStockGormRepository(db *gorm.DB) *StockGormRepository {
	return &StockGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。stockが負になるread-then-writeはしない
func (r *StockGormRepository) DecreaseIfEnough(ctx context.Context, skuID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSku{}).
		Where("sku_id = ? AND stock >= ?", skuID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（手動補充）
func (r *StockGormRepository) Increase(ctx context.Context, skuID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSku{}).
		Where("sku_id = ?", skuID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 調整履歴作成
func (r *StockGormRepository) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return err
	}
	return nil
}
