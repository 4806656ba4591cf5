package repository

import (
	"context"

	"app/internal/domain/model"
)

// SKUの読み取りだけを約束。在庫の更新は StockRepository 経由
type ProductSkuRepository interface {
	FindBySkuID(ctx context.Context, skuID int64) (model.ProductSku, error)
}
