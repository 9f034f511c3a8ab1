package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(DiscountService), "*"),
	wire.Bind(new(IDiscountService), new(*DiscountService)),

	wire.Struct(new(PricingService), "*"),
	wire.Bind(new(IPricingService), new(*PricingService)),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	wire.Struct(new(CheckoutService), "*"),
	wire.Bind(new(ICheckoutService), new(*CheckoutService)),

	wire.Struct(new(PaymentService), "*"),
	wire.Bind(new(IPaymentService), new(*PaymentService)),

	wire.Struct(new(ReturnService), "*"),
	wire.Bind(new(IReturnService), new(*ReturnService)),

	wire.Struct(new(StockService), "*"),
	wire.Bind(new(IStockService), new(*StockService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(PrefectureAddressResolver), "*"),
	wire.Bind(new(AddressResolver), new(*PrefectureAddressResolver)),

	NewPaymentGateway,
	NewOrderEventProducer,
)
