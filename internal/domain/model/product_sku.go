package model

import "time"

// ProductSku は購入可能なバリエーション（サイズ・価格・在庫）。
// stock は StockRepository の条件付きUPDATE以外から触らない。
type ProductSku struct {
	SkuID     int64     `gorm:"column:sku_id;primaryKey;autoIncrement" json:"sku_id"`
	ProductNo int64     `gorm:"column:product_no;not null;index" json:"product_no"`
	Price     int64     `gorm:"not null" json:"price"`
	Size      string    `gorm:"type:varchar(50)" json:"size"`
	Stock     int64     `gorm:"not null" json:"stock"`
	// default_price は商品ごとに高々1つだけ true
	DefaultPrice bool      `gorm:"column:default_price;not null;default:false" json:"default_price"`
	Unlisted     bool      `gorm:"not null;default:false" json:"unlisted"`
	Created      time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Updated      time.Time `gorm:"column:updated;not null;autoUpdateTime" json:"updated"`
}

func (ProductSku) TableName() string { return "product_sku" }
