package model

import "time"

type OrderStatus string

const (
	OrderStatusInitiated      OrderStatus = "INITIATED"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
	OrderStatusRejected       OrderStatus = "REJECTED"
	OrderStatusRefunded       OrderStatus = "REFUNDED"
	OrderStatusTimedOutReject OrderStatus = "TIMED_OUT_REJECT"
)

// 遷移の正当性はここだけで判断する
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusInitiated: {
		OrderStatusConfirmed:      true,
		OrderStatusCancelled:      true,
		OrderStatusRejected:       true,
		OrderStatusTimedOutReject: true,
	},
	OrderStatusConfirmed: {
		OrderStatusCompleted: true,
		OrderStatusCancelled: true,
		OrderStatusRefunded:  true,
	},
	OrderStatusCompleted:      {},
	OrderStatusCancelled:      {},
	OrderStatusRejected:       {},
	OrderStatusRefunded:       {},
	OrderStatusTimedOutReject: {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

type Order struct {
	OrderID    string      `gorm:"column:order_id;type:varchar(36);primaryKey" json:"order_id"`
	CustomerNo int64       `gorm:"column:customer_no;not null;index" json:"customer_no"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	StartTime  *time.Time  `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime    *time.Time  `gorm:"column:end_time" json:"end_time,omitempty"`
	Created    time.Time   `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Updated    time.Time   `gorm:"column:updated;not null;autoUpdateTime" json:"updated"`
}

func (Order) TableName() string { return "orders" }

// 期間限定（時間枠つき）の注文かどうか
func (o Order) IsTimeBoxed() bool {
	return o.StartTime != nil && o.EndTime != nil
}
