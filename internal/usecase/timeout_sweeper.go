package usecase

import (
	"context"
	"time"

	repo "app/internal/repository"
)

// TimeoutSweeper は時間枠が切れても支払われなかった注文を定期的に却下する。
// 1件ずつRejectByTimeoutに流すので、掃除中に支払いが確定した注文は
// 遷移ガードでそのままno-opになる
type TimeoutSweeper struct {
	orders    repo.OrderRepository
	lifecycle *LifecycleUsecase
	log       Logger
}

func NewTimeoutSweeper(orders repo.OrderRepository, lifecycle *LifecycleUsecase, log Logger) *TimeoutSweeper {
	return &TimeoutSweeper{orders: orders, lifecycle: lifecycle, log: log}
}

func (s *TimeoutSweeper) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

func (s *TimeoutSweeper) Sweep(ctx context.Context) {
	ids, err := s.orders.ListExpiredTimeBoxed(ctx, time.Now())
	if err != nil {
		s.log.Errorf("timeout sweep: listing failed: %v", err)
		return
	}

	for _, id := range ids {
		res, err := s.lifecycle.RejectByTimeout(ctx, id)
		if err != nil {
			s.log.Errorf("timeout sweep: reject failed for order %s: %v", id, err)
			continue
		}
		if res == TransitionApplied {
			s.log.Infof("timeout sweep: order %s rejected, window closed", id)
		}
	}
}
