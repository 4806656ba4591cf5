package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, payment model.StripePayment) error {
	if err := r.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return err
	}
	return nil
}

func (r *PaymentGormRepository) FindByOrderID(ctx context.Context, orderID string) (model.StripePayment, error) {
	var p model.StripePayment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StripePayment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StripePayment{}, err
	}
	return p, nil
}

// トランザクションIDをキーにした更新。再配送されても同じ行を上書きするだけ
func (r *PaymentGormRepository) UpdateIntent(ctx context.Context, transactionID string, stripeStatus string, amountReceived int64, rawResponse string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.StripePayment{}).
		Where("stripe_transaction_id = ?", transactionID).
		Updates(map[string]interface{}{
			"stripe_status":           stripeStatus,
			"amount_received":         amountReceived,
			"stripe_payment_response": rawResponse,
			"updated":                 time.Now(),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// chargeイベントはメタデータの注文IDで引く
func (r *PaymentGormRepository) UpdateCharge(ctx context.Context, orderID string, stripeStatus string, amountCaptured, amountRefunded int64, rawResponse string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.StripePayment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"stripe_status":          stripeStatus,
			"amount_captured":        amountCaptured,
			"amount_refunded":        amountRefunded,
			"stripe_charge_response": rawResponse,
			"updated":                time.Now(),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
