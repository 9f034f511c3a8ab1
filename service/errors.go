package service

import "Marche/pkg/response"

// 结账/退货链路的业务错误。库存台账错误见 dao/errors.go
var (
	ErrInvalidDueDate          = response.NewError(42206, "支付期限必须晚于当前时间")
	ErrExcessiveReturnQuantity = response.NewError(42207, "退货数量超过订单数量")
	ErrPaymentFailed           = response.NewError(42208, "支付失败")
	ErrAddressValidationFailed = response.NewError(42209, "收货地址校验失败")
	ErrEmptyCart               = response.NewError(42210, "购物车为空")
	ErrOrderNotFound           = response.NewError(42211, "订单不存在")
	ErrOrderNotReturnable      = response.NewError(42212, "订单当前状态不可退货")
)
