package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// losesConflict は候補注文の各商品について、同じ商品を取り合う生きている注文を探す。
// 先に作られた競合がひとつでもあれば候補の負け
func (u *LifecycleUsecase) losesConflict(ctx context.Context, r repo.TxRepos, o model.Order, items []model.OrderItem) (bool, error) {
	seen := map[int64]bool{}
	for _, it := range items {
		if seen[it.ProductNo] {
			continue
		}
		seen[it.ProductNo] = true

		conflicting, err := r.Orders().FindConflicting(ctx, it.ProductNo, o.OrderID, time.Now())
		if err != nil {
			return false, err
		}
		if candidateLoses(o, conflicting) {
			return true, nil
		}
	}
	return false, nil
}

// 最初に作られた注文が勝つ
func candidateLoses(candidate model.Order, conflicting []model.Order) bool {
	for _, c := range conflicting {
		if c.Created.Before(candidate.Created) {
			return true
		}
	}
	return false
}
