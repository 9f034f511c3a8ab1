package types

import "github.com/shopspring/decimal"

// PricingBreakdown 一次购物车试算/结账的金额汇总。
// 引擎是纯函数，所有中间量 decimal 精确计算，只在对外字段上保留两位
type PricingBreakdown struct {
	Subtotal             decimal.Decimal `json:"subtotal"`              // 折后小计
	UndiscountedSubtotal decimal.Decimal `json:"undiscounted_subtotal"` // 折前小计
	TotalDiscount        decimal.Decimal `json:"total_discount"`        // 折前-折后，不做逐项累加避免舍入漂移
	SavedAmount          decimal.Decimal `json:"saved_amount"`
	Tax                  decimal.Decimal `json:"tax"`
	TaxRate              decimal.Decimal `json:"tax_rate"`
	ShippingCost         decimal.Decimal `json:"shipping_cost"`
	GrandTotal           decimal.Decimal `json:"grand_total"`
	Lines                []LinePricing   `json:"lines"`
}

// LinePricing 单行定价结果，unit_discount 为实际生效的单件折扣
type LinePricing struct {
	StockID      uint64          `json:"stock_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	BrandName    string          `json:"brand_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitDiscount decimal.Decimal `json:"unit_discount"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// ShippingInput 运费计算输入：优先级 显式覆盖 > 自宅配送免运费 > 都道府县查表
type ShippingInput struct {
	PrefectureID   *uint64          `json:"prefecture_id"`
	HomeDelivery   bool             `json:"home_delivery"`
	Override       *decimal.Decimal `json:"override"` // POS 渠道显式传入
	CashOnDelivery bool             `json:"cash_on_delivery"` // 代引：固定附加费叠加
}
