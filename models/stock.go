package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock 可售卖的规格单位（商品+选项组合），自带双渠道价格与库存
type Stock struct {
	ID               uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID        uint64          `gorm:"not null;index:idx_product_id;column:product_id" json:"product_id"`
	ProductName      string          `gorm:"size:255;not null;column:product_name" json:"product_name"`
	CategoryName     string          `gorm:"size:255;column:category_name" json:"category_name"`
	BrandName        string          `gorm:"size:255;column:brand_name" json:"brand_name"`
	OptionName       string          `gorm:"size:255;column:option_name" json:"option_name"`
	Quantity         int             `gorm:"not null;default:0;column:quantity" json:"quantity"`                   // 总持有数量
	ReservedQuantity int             `gorm:"not null;default:0;column:reserved_quantity" json:"reserved_quantity"` // 未确认订单占用数量
	WebPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;column:web_price" json:"web_price"`
	PosPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null;column:pos_price" json:"pos_price"`
	WebDiscount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:web_discount" json:"web_discount"` // 渠道固定单件折扣
	PosDiscount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:pos_discount" json:"pos_discount"`
	Cost             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:cost" json:"cost"`
	AlertQuantity    int             `gorm:"not null;default:0;column:alert_quantity" json:"alert_quantity"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Stock) TableName() string {
	return "stocks"
}

// Available 真实可售数量，不变式：0 <= reserved_quantity <= quantity
func (s *Stock) Available() int {
	return s.Quantity - s.ReservedQuantity
}

// CanReserve 判断是否可以占用指定数量
func (s *Stock) CanReserve(qty int) bool {
	return qty >= 0 && s.Available() >= qty
}

// IsLowStock 判断是否低库存（可售数量落到警戒线以内）
func (s *Stock) IsLowStock() bool {
	return s.Available() <= s.AlertQuantity
}

// DiscountRule 数量阶梯折扣：满 min_quantity 件每件减 discount
type DiscountRule struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StockID     uint64          `gorm:"not null;index:idx_discount_rules_stock_id;column:stock_id" json:"stock_id"`
	MinQuantity int             `gorm:"not null;column:min_quantity" json:"min_quantity"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:discount" json:"discount"` // 单件折扣额
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DiscountRule) TableName() string {
	return "discount_rules"
}

// StockMovement 库存变动流水，reason 固定枚举，审计用
type StockMovement struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	StockID   uint64    `gorm:"not null;index:idx_stock_movements_stock_id;column:stock_id" json:"stock_id"`
	Quantity  int       `gorm:"not null;column:quantity" json:"quantity"` // 正数增加，负数减少
	Reason    string    `gorm:"size:32;not null;column:reason" json:"reason"`
	RefID     string    `gorm:"size:64;column:ref_id" json:"ref_id"` // 关联单号（订单号/退货单号）
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// 库存变动原因
const (
	MovementReserve = "reserve"
	MovementRelease = "release"
	MovementConsume = "consume"
	MovementRestock = "restock"
	MovementAdjust  = "adjust"
)
