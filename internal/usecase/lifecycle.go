package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// TransitionResult は想定内の業務結果。例外にはしない
type TransitionResult string

const (
	TransitionApplied    TransitionResult = "APPLIED"
	TransitionNoop       TransitionResult = "NOOP"
	TransitionConflict   TransitionResult = "CONFLICT"
	TransitionOutOfStock TransitionResult = "OUT_OF_STOCK"
)

// トランザクションを巻き戻すための内部センチネル
var errInsufficientStock = errors.New("insufficient stock")

// LifecycleUsecase は注文の状態遷移を一手に引き受ける。
// 不正な遷移はエラーではなくno-op（ログだけ残す）。
type LifecycleUsecase struct {
	tx    repo.TransactionManager
	cache StatusCache
	log   Logger
}

func NewLifecycleUsecase(tx repo.TransactionManager, cache StatusCache, log Logger) *LifecycleUsecase {
	return &LifecycleUsecase{tx: tx, cache: cache, log: log}
}

// Confirm は注文を確定する：行ロック→遷移ガード→衝突チェック→在庫減算→CONFIRMED。
// 明細の在庫減算はひとつの単位で、1件でも足りなければ全部巻き戻す。
func (u *LifecycleUsecase) Confirm(ctx context.Context, orderID string) (TransitionResult, error) {
	result := TransitionNoop

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// リトライや再配送での二重減算はこのガードで止まる
		if !model.CanTransition(o.Status, model.OrderStatusConfirmed) {
			u.log.Infof("confirm skipped: order %s is %s", orderID, o.Status)
			return nil
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 支払い確定が本当のコミットポイントなので、衝突チェックは確定時にやる
		if o.IsTimeBoxed() {
			loses, err := u.losesConflict(ctx, r, o, items)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if loses {
				if _, err := r.Orders().UpdateStatus(ctx, orderID, o.Status, model.OrderStatusRejected); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				u.log.Warnf("confirm rejected: order %s lost a reservation conflict", orderID)
				result = TransitionConflict
				return nil
			}
		}

		for _, it := range items {
			ok, err := r.Stock().DecreaseIfEnough(ctx, it.ProductSkuNo, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				// ここまでの減算ごと巻き戻す
				return errInsufficientStock
			}
		}

		if _, err := r.Orders().UpdateStatus(ctx, orderID, o.Status, model.OrderStatusConfirmed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		result = TransitionApplied
		return nil
	})

	if errors.Is(err, errInsufficientStock) {
		u.log.Warnf("confirm failed: order %s out of stock", orderID)
		return TransitionOutOfStock, nil
	}
	if err != nil {
		return TransitionNoop, err
	}

	switch result {
	case TransitionApplied:
		u.cache.SetStatus(ctx, orderID, model.OrderStatusConfirmed)
	case TransitionConflict:
		u.cache.SetStatus(ctx, orderID, model.OrderStatusRejected)
	}
	return result, nil
}

func (u *LifecycleUsecase) Cancel(ctx context.Context, orderID string) (TransitionResult, error) {
	return u.transition(ctx, orderID, model.OrderStatusCancelled)
}

func (u *LifecycleUsecase) Reject(ctx context.Context, orderID string) (TransitionResult, error) {
	return u.transition(ctx, orderID, model.OrderStatusRejected)
}

// Refund は遷移テーブル上CONFIRMEDからしか通らない。
// 在庫は戻さない（補充は明示的な別操作）。
func (u *LifecycleUsecase) Refund(ctx context.Context, orderID string) (TransitionResult, error) {
	return u.transition(ctx, orderID, model.OrderStatusRefunded)
}

func (u *LifecycleUsecase) Complete(ctx context.Context, orderID string) (TransitionResult, error) {
	return u.transition(ctx, orderID, model.OrderStatusCompleted)
}

// RejectByTimeout は支払い待ちのままの注文を却下し、時間枠も閉じる
func (u *LifecycleUsecase) RejectByTimeout(ctx context.Context, orderID string) (TransitionResult, error) {
	result := TransitionNoop

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !model.CanTransition(o.Status, model.OrderStatusTimedOutReject) {
			u.log.Infof("timeout reject skipped: order %s is %s", orderID, o.Status)
			return nil
		}

		ok, err := r.Orders().UpdateStatusClosingWindow(ctx, orderID, o.Status, model.OrderStatusTimedOutReject, time.Now())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if ok {
			result = TransitionApplied
		}
		return nil
	})

	if err != nil {
		return TransitionNoop, err
	}
	if result == TransitionApplied {
		u.cache.SetStatus(ctx, orderID, model.OrderStatusTimedOutReject)
	}
	return result, nil
}

func (u *LifecycleUsecase) transition(ctx context.Context, orderID string, to model.OrderStatus) (TransitionResult, error) {
	result := TransitionNoop

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !model.CanTransition(o.Status, to) {
			u.log.Infof("transition to %s skipped: order %s is %s", to, orderID, o.Status)
			return nil
		}

		ok, err := r.Orders().UpdateStatus(ctx, orderID, o.Status, to)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if ok {
			result = TransitionApplied
		}
		return nil
	})

	if err != nil {
		return TransitionNoop, err
	}
	if result == TransitionApplied {
		u.cache.SetStatus(ctx, orderID, to)
	}
	return result, nil
}
