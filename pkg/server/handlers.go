package server

import (
	"Marche/handler"
)

type Handlers struct {
	Cart     *handler.Cart
	Checkout *handler.Checkout
	Order    *handler.Order
	Stock    *handler.Stock
	Return   *handler.Return
	Pay      *handler.Pay
}
