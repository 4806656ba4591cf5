package repository

import (
	"context"

	"app/internal/domain/model"
)

// 在庫台帳。read-then-writeは禁止で、必ず条件付きUPDATE1文で更新する
type StockRepository interface {
	// 在庫が足りるときだけ減算。減らせたかを返す
	DecreaseIfEnough(ctx context.Context, skuID int64, qty int64) (bool, error)

	// 在庫戻し（手動の補充。refundからは呼ばれない）
	Increase(ctx context.Context, skuID int64, qty int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error
}
