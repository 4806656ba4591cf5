package model

import "time"

// 在庫調整の履歴
type StockAdjustment struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SkuID   int64     `gorm:"column:sku_id;not null;index" json:"sku_id"`
	Delta   int64     `gorm:"not null" json:"delta"`
	Reason  string    `gorm:"type:varchar(255);not null" json:"reason"`
	Created time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
}

func (StockAdjustment) TableName() string { return "stock_adjustments" }
