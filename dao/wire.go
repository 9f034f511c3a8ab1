package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewStock,
	NewDiscountRule,
	NewCart,
	NewOrder,
	NewReturnLog,
	NewPrefecture,
)
