package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary 订单列表项
type OrderSummary struct {
	ID        int64           `json:"id"`
	OrderSn   string          `json:"order_sn"`
	OrderRef  string          `json:"order_ref"`
	Channel   string          `json:"channel"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	PayStatus string          `json:"payment_status"`
	ItemCount int             `json:"item_count"`
	FirstItem string          `json:"first_item"`
	Created   time.Time       `json:"created_at"`
}

// OrderListResponse 游标分页
type OrderListResponse struct {
	Orders     []*OrderSummary `json:"orders"`
	NextCursor int64           `json:"next_cursor"`
	HasMore    bool            `json:"has_more"`
}

// OrderDetail 订单详情
type OrderDetail struct {
	ID               int64             `json:"id"`
	OrderSn          string            `json:"order_sn"`
	OrderRef         string            `json:"order_ref"`
	Channel          string            `json:"channel"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	TotalDiscount    decimal.Decimal   `json:"total_discount"`
	Tax              decimal.Decimal   `json:"tax"`
	ShippingCost     decimal.Decimal   `json:"shipping_cost"`
	Total            decimal.Decimal   `json:"total"`
	PaidAmount       decimal.Decimal   `json:"paid_amount"`
	DuePaymentAmount decimal.Decimal   `json:"due_payment_amount"`
	PaymentMethod    string            `json:"payment_method"`
	PaymentStatus    string            `json:"payment_status"`
	OrderStatus      string            `json:"order_status"`
	DueDate          *time.Time        `json:"due_date"`
	Items            []OrderItemDetail `json:"items"`
	Created          time.Time         `json:"created_at"`
}

// PayStatus 前端 prepay 后轮询用
type PayStatus struct {
	OrderSn          string          `json:"order_sn"`
	PaymentStatus    string          `json:"payment_status"`
	OrderStatus      string          `json:"order_status"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	DuePaymentAmount decimal.Decimal `json:"due_payment_amount"`
	GatewayReference string          `json:"gateway_reference,omitempty"`
	PaidAt           *time.Time      `json:"paid_at"`
}

type OrderItemDetail struct {
	ID           uint64          `json:"id"`
	StockID      uint64          `json:"stock_id"`
	ProductName  string          `json:"product_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitDiscount decimal.Decimal `json:"unit_discount"`
	UnitQuantity int             `json:"unit_quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}
