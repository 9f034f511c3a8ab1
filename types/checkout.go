package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest 结账请求：登录用户不传 lines 时取持久化购物车，
// 游客传 guest_token 取 Redis 购物车
type PlaceOrderRequest struct {
	Channel         string               `json:"channel" binding:"required,oneof=web pos"`
	Lines           []AddCartLineRequest `json:"lines"`
	GuestToken      string               `json:"guest_token"`
	ApplyDiscount   bool                 `json:"apply_discount"`
	CustomDiscounts map[string]string    `json:"custom_discounts"` // stock_id -> 本行自定义折扣总额
	PaymentMethod   string               `json:"payment_method" binding:"required"`
	DueDate         *time.Time           `json:"due_date"`
	ShippingCost    *string              `json:"shipping_cost"` // POS 显式运费覆盖
	HomeDelivery    bool                 `json:"home_delivery"`
	Address         AddressInput         `json:"address"`
	OpenID          string               `json:"openid"` // 微信支付用
}

type AddressInput struct {
	Name         string  `json:"name"`
	PostalCode   string  `json:"postal_code"`
	PrefectureID *uint64 `json:"prefecture_id"`
	City         string  `json:"city"`
	Street       string  `json:"street"`
}

// ResolvedAddress 地址解析结果（外部协作方契约）
type ResolvedAddress struct {
	Name         string
	FullAddress  string
	RegionID     uint64
	PrefectureID uint64
	ShippingFee  decimal.Decimal
}

// PaymentMeta 结账时的支付语境，service 内部流转
type PaymentMeta struct {
	Method          string
	Currency        string
	DueDate         *time.Time
	ShippingCost    *decimal.Decimal
	HomeDelivery    bool
	ApplyDiscount   bool
	CustomDiscounts map[uint64]decimal.Decimal
	OpenID          string
}

// PlaceOrderResponse 下单结果：订单 + 唤起支付所需参数（web 渠道）
type PlaceOrderResponse struct {
	OrderID    int64            `json:"order_id"`
	OrderSn    string           `json:"order_sn"`
	OrderRef   string           `json:"order_ref"`
	Status     string           `json:"status"`
	Pricing    PricingBreakdown `json:"pricing"`
	PayParams  interface{}      `json:"pay_params,omitempty"`
	PayMessage string           `json:"pay_message,omitempty"`
}

// GatewayResult 支付网关返回（外部协作方契约）
type GatewayResult struct {
	Success          bool
	Message          string
	GatewayReference string
	PayParams        interface{} // 前端唤起支付的参数
}
