package model

type OrderItem struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      string `gorm:"column:order_id;type:varchar(36);not null;index" json:"order_id"`
	ProductNo    int64  `gorm:"column:product_no;not null;index" json:"product_no"`
	ProductSkuNo int64  `gorm:"column:product_sku_no;not null;index" json:"sku_id"`
	// 注文時点の単価スナップショット。以後カタログ価格が変わっても動かない
	Price    int64 `gorm:"not null" json:"price"`
	Quantity int64 `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "orders_lineitem" }
