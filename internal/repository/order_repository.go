package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧表示用（注文合計はlineitemのスナップショット価格から計算）
type OrderSummary struct {
	OrderID   string            `json:"order_id"`
	Created   time.Time         `json:"created"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Status    model.OrderStatus `json:"status"`
	OrderSum  int64             `json:"order_sum"`
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// 同一注文への confirm を直列化するため行ロックで取る
	FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error)

	// ポーリング用。見つからない場合は false（エラーにしない）
	GetStatus(ctx context.Context, orderID string) (model.OrderStatus, bool, error)

	// 遷移元statusを条件に入れた条件付きUPDATE。変更できたかを返す
	UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error)

	// タイムアウト却下用：statusと同時にend_timeを閉じる
	UpdateStatusClosingWindow(ctx context.Context, orderID string, from, to model.OrderStatus, endTime time.Time) (bool, error)

	// 同じ商品を取り合う、まだ生きている時間枠つき注文
	FindConflicting(ctx context.Context, productNo int64, excludeOrderID string, now time.Time) ([]model.Order, error)

	// 時間枠が終わったのに支払い待ちのままの注文（タイムアウト掃除用）
	ListExpiredTimeBoxed(ctx context.Context, now time.Time) ([]string, error)

	ListAll(ctx context.Context) ([]OrderSummary, error)
}
