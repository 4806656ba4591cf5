package model

import "time"

// StripePayment はゲートウェイ側トランザクションIDをキーに持つ支払いレコード。
// Webhook Reconcilerだけが更新し、削除はしない。
type StripePayment struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             string `gorm:"column:order_id;type:varchar(36);not null;index" json:"order_id"`
	Amount              int64  `gorm:"not null" json:"amount"`
	StripeTransactionID string `gorm:"column:stripe_transaction_id;type:varchar(255);not null;uniqueIndex" json:"stripe_transaction_id"`
	StripeStatus        string `gorm:"column:stripe_status;type:varchar(50)" json:"stripe_status"`
	AmountReceived      int64  `gorm:"column:amount_received;not null;default:0" json:"amount_received"`
	AmountCaptured      int64  `gorm:"column:amount_captured;not null;default:0" json:"amount_captured"`
	AmountRefunded      int64  `gorm:"column:amount_refunded;not null;default:0" json:"amount_refunded"`

	// 監査・デバッグ用の生レスポンス
	InitiationResponse string `gorm:"column:stripe_initiation_response;type:text" json:"-"`
	PaymentResponse    string `gorm:"column:stripe_payment_response;type:text" json:"-"`
	ChargeResponse     string `gorm:"column:stripe_charge_response;type:text" json:"-"`

	Created time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Updated time.Time `gorm:"column:updated;not null;autoUpdateTime" json:"updated"`
}

func (StripePayment) TableName() string { return "stripe_payments" }
