package model

import "time"

type Product struct {
	ProductNo   int64     `gorm:"column:product_no;primaryKey;autoIncrement" json:"product_no"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Created     time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Updated     time.Time `gorm:"column:updated;not null;autoUpdateTime" json:"updated"`
}

func (Product) TableName() string { return "product" }
