package usecase

import (
	"context"
	"encoding/json"

	repo "app/internal/repository"
)

// ゲートウェイが送ってくるイベント種別
const (
	EventPaymentIntentCreated   = "payment_intent.created"
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
	EventChargeSucceeded        = "charge.succeeded"
	EventChargeRefunded         = "charge.refunded"
)

// Webhookのワイヤ形式。必要なフィールドだけ読む
type WebhookEvent struct {
	Type string       `json:"type"`
	Data *WebhookData `json:"data"`
}

type WebhookData struct {
	Object *WebhookObject `json:"object"`
}

type WebhookObject struct {
	ID             string            `json:"id"`
	Status         string            `json:"status"`
	Amount         int64             `json:"amount"`
	AmountReceived int64             `json:"amount_received"`
	AmountCaptured int64             `json:"amount_captured"`
	AmountRefunded int64             `json:"amount_refunded"`
	Metadata       map[string]string `json:"metadata"`
}

// Notifier は遷移後の通知。遷移とは切り離し、失敗しても遷移は失敗にならない
type Notifier interface {
	OrderConfirmed(orderID string)
	OrderRefunded(orderID string)
}

// WebhookUsecase はat-least-once・順不同のイベントを安全に適用する。
// 冪等性は (1) トランザクションIDキーの更新 (2) 遷移テーブルのガード で担保
type WebhookUsecase struct {
	payments  repo.PaymentRepository
	lifecycle *LifecycleUsecase
	notifier  Notifier
	log       Logger
}

func NewWebhookUsecase(payments repo.PaymentRepository, lifecycle *LifecycleUsecase, notifier Notifier, log Logger) *WebhookUsecase {
	return &WebhookUsecase{payments: payments, lifecycle: lifecycle, notifier: notifier, log: log}
}

// HandleEvent はイベントを適用する。戻り値のerrorは内部失敗で、
// ハンドラ側はそれでもゲートウェイには200を返す（再送を回復手段にしない）
func (u *WebhookUsecase) HandleEvent(ctx context.Context, body []byte) error {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		u.log.Warnf("webhook: undecodable event: %v", err)
		return nil
	}

	if ev.Data == nil || ev.Data.Object == nil {
		u.log.Infof("webhook: no data in %q event, nothing to do", ev.Type)
		return nil
	}
	obj := ev.Data.Object

	orderID := obj.Metadata["order_id"]
	if orderID == "" {
		u.log.Infof("webhook: no order id in %q event, nothing to do", ev.Type)
		return nil
	}

	raw := string(body)

	switch ev.Type {
	case EventPaymentIntentCreated:
		// 記録だけ。支払いレコードはintent作成時にもう在る
		u.log.Infof("webhook: payment intent created for order %s", orderID)
		return nil

	case EventPaymentIntentSucceeded:
		if err := u.updateIntent(ctx, obj, raw); err != nil {
			return err
		}
		res, err := u.lifecycle.Confirm(ctx, orderID)
		if err != nil {
			return err
		}
		switch res {
		case TransitionApplied:
			u.notifier.OrderConfirmed(orderID)
		case TransitionOutOfStock:
			u.log.Errorf("webhook: payment succeeded but order %s is out of stock", orderID)
		case TransitionConflict:
			u.log.Warnf("webhook: payment succeeded but order %s lost a reservation conflict", orderID)
		}
		return nil

	case EventPaymentIntentFailed:
		if err := u.updateIntent(ctx, obj, raw); err != nil {
			return err
		}
		_, err := u.lifecycle.Cancel(ctx, orderID)
		return err

	case EventChargeSucceeded:
		return u.updateCharge(ctx, orderID, obj, raw)

	case EventChargeRefunded:
		if err := u.updateCharge(ctx, orderID, obj, raw); err != nil {
			return err
		}
		res, err := u.lifecycle.Refund(ctx, orderID)
		if err != nil {
			return err
		}
		if res == TransitionApplied {
			u.notifier.OrderRefunded(orderID)
		}
		return nil

	default:
		u.log.Infof("webhook for %q, not setup yet", ev.Type)
		return nil
	}
}

func (u *WebhookUsecase) updateIntent(ctx context.Context, obj *WebhookObject, raw string) error {
	ok, err := u.payments.UpdateIntent(ctx, obj.ID, obj.Status, obj.AmountReceived, raw)
	if err != nil {
		return err
	}
	if !ok {
		u.log.Warnf("webhook: no payment record for transaction %s", obj.ID)
	}
	return nil
}

func (u *WebhookUsecase) updateCharge(ctx context.Context, orderID string, obj *WebhookObject, raw string) error {
	ok, err := u.payments.UpdateCharge(ctx, orderID, obj.Status, obj.AmountCaptured, obj.AmountRefunded, raw)
	if err != nil {
		return err
	}
	if !ok {
		u.log.Warnf("webhook: no payment record for order %s", orderID)
	}
	return nil
}
