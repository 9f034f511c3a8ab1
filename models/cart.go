package models

import (
	"time"
)

// CartLine 持久化购物车行（登录用户）。游客购物车存 Redis，
// 两者在 service 层统一成 types.CartLine
type CartLine struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_user_stock,unique;column:user_id" json:"user_id"`
	StockID   uint64    `gorm:"not null;index:idx_user_stock,unique;column:stock_id" json:"stock_id"`
	Quantity  int       `gorm:"not null;default:1;column:quantity" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}
