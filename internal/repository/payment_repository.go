package repository

import (
	"context"

	"app/internal/domain/model"
)

// 支払いレコード。Webhookの再配送は「更新」として吸収する（INSERTし直さない）
type PaymentRepository interface {
	Create(ctx context.Context, payment model.StripePayment) error
	FindByOrderID(ctx context.Context, orderID string) (model.StripePayment, error)

	// payment_intent系イベント：ゲートウェイのトランザクションIDをキーに更新
	UpdateIntent(ctx context.Context, transactionID string, stripeStatus string, amountReceived int64, rawResponse string) (bool, error)

	// charge系イベント：メタデータの注文IDをキーに更新
	UpdateCharge(ctx context.Context, orderID string, stripeStatus string, amountCaptured, amountRefunded int64, rawResponse string) (bool, error)
}
