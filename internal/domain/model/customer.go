package model

import "time"

// Customer は注文ごとに1レコード作る（重複排除はしない）
type Customer struct {
	CustomerNo    int64     `gorm:"column:customer_no;primaryKey;autoIncrement" json:"customer_no"`
	Email         string    `gorm:"type:varchar(255);not null" json:"email"`
	FirstName     string    `gorm:"column:first_name;type:varchar(255);not null" json:"first_name"`
	LastName      string    `gorm:"column:last_name;type:varchar(255);not null" json:"last_name"`
	StreetAddress string    `gorm:"column:street_address;type:varchar(255);not null" json:"street_address"`
	ZipCode       string    `gorm:"column:zip_code;type:varchar(10);not null" json:"zip_code"`
	City          string    `gorm:"type:varchar(255);not null" json:"city"`
	Created       time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
}

func (Customer) TableName() string { return "customer" }
