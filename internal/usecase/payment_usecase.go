package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type GatewayIntentInput struct {
	OrderID string
	// 注文合計（クローネ単位。øreへの換算はアダプタがやる）
	Total    int64
	Customer model.Customer
}

type GatewayIntent struct {
	TransactionID string
	ClientSecret  string
	Status        string
	// ゲートウェイが記録した金額（øre）
	Amount int64
	// 監査用の生レスポンス
	Raw string
}

// PaymentGateway は外部決済APIへの薄い口。呼び出しはタイムアウトつきで、
// 失敗はそのままエラーとして返す（サーバ側で勝手にリトライしない）
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, in GatewayIntentInput) (GatewayIntent, error)
}

type PaymentUsecase struct {
	tx       repo.TransactionManager
	payments repo.PaymentRepository
	gateway  PaymentGateway
}

func NewPaymentUsecase(tx repo.TransactionManager, payments repo.PaymentRepository, gateway PaymentGateway) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, payments: payments, gateway: gateway}
}

type CreatePaymentOutput struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePayment は注文に紐づくpayment intentを作る。
// ゲートウェイ呼び出しは長くなり得るのでDBトランザクションの外でやる
func (u *PaymentUsecase) CreatePayment(ctx context.Context, orderID string, customerNo int64) (CreatePaymentOutput, error) {
	var (
		customer model.Customer
		total    int64
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		c, err := r.Customers().FindByNo(ctx, customerNo)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "customer not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		customer = c

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		for _, it := range items {
			total += it.Price * it.Quantity
		}
		return nil
	})
	if err != nil {
		return CreatePaymentOutput{}, err
	}

	intent, err := u.gateway.CreatePaymentIntent(ctx, GatewayIntentInput{
		OrderID:  orderID,
		Total:    total,
		Customer: customer,
	})
	if err != nil {
		return CreatePaymentOutput{}, err
	}

	if err := u.payments.Create(ctx, model.StripePayment{
		OrderID:             orderID,
		Amount:              intent.Amount,
		StripeTransactionID: intent.TransactionID,
		StripeStatus:        intent.Status,
		InitiationResponse:  intent.Raw,
	}); err != nil {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CreatePaymentOutput{ClientSecret: intent.ClientSecret}, nil
}
