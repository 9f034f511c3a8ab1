package models

import (
	"github.com/shopspring/decimal"
)

// Region 地域（地方区分）
type Region struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"size:64;not null;column:name" json:"name"`
}

func (Region) TableName() string {
	return "regions"
}

// Prefecture 都道府县，运费按此查表
type Prefecture struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	RegionID    uint64          `gorm:"not null;index:idx_region_id;column:region_id" json:"region_id"`
	Name        string          `gorm:"size:64;not null;column:name" json:"name"`
	ShippingFee decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shipping_fee" json:"shipping_fee"`
}

func (Prefecture) TableName() string {
	return "prefectures"
}
