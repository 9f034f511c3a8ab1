package types

import "github.com/shopspring/decimal"

// CartLine 统一的购物车行：持久化行带 UserID，游客行 UserID 为 nil、
// ID 是本地序号（不落库）
type CartLine struct {
	ID       uint64 `json:"id"`
	UserID   *int64 `json:"user_id,omitempty"`
	StockID  uint64 `json:"stock_id"`
	Quantity int    `json:"quantity"`
}

// Persisted 是否持久化购物车行
func (l CartLine) Persisted() bool {
	return l.UserID != nil
}

type AddCartLineRequest struct {
	StockID  uint64 `json:"stock_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// CartView 购物车展示：带试算金额
type CartView struct {
	Lines   []CartLineView   `json:"lines"`
	Pricing PricingBreakdown `json:"pricing"`
}

type CartLineView struct {
	ID           uint64          `json:"id"`
	StockID      uint64          `json:"stock_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitDiscount decimal.Decimal `json:"unit_discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Available    int             `json:"available"`
}
