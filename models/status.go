package models

// OrderStatus 订单状态机：
// pending/pos(已占用库存) -> paid(已消耗库存) -> returned/partially_returned
// 支付失败时订单停留在 pending，占用的库存由外部对账任务回收
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusPos               OrderStatus = "pos"
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusPartiallyReturned OrderStatus = "partially_returned"
	OrderStatusReturned          OrderStatus = "returned"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:           {OrderStatusPaid: true},
	OrderStatusPos:               {OrderStatusPaid: true},
	OrderStatusPaid:              {OrderStatusPartiallyReturned: true, OrderStatusReturned: true},
	OrderStatusPartiallyReturned: {OrderStatusPartiallyReturned: true, OrderStatusReturned: true},
	OrderStatusReturned:          {},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return validNext[s][to]
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// 支付方式
const (
	PaymentMethodWechat         = "wechat"
	PaymentMethodCash           = "cash"
	PaymentMethodCashOnDelivery = "cod" // 货到付款，运费上叠加固定附加费
)
