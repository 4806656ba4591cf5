package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// StockUsecase は手動の在庫補充。refundは在庫を戻さないので、
// 戻したいときはこの操作を明示的に呼ぶ
type StockUsecase struct {
	tx repo.TransactionManager
}

func NewStockUsecase(tx repo.TransactionManager) *StockUsecase {
	return &StockUsecase{tx: tx}
}

func (u *StockUsecase) Restock(ctx context.Context, skuID int64, qty int64, reason string) error {
	if qty <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Stock().Increase(ctx, skuID, qty); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "sku not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 補充も調整履歴に残す
		if err := r.Stock().CreateAdjustment(ctx, model.StockAdjustment{
			SkuID:  skuID,
			Delta:  qty,
			Reason: reason,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
