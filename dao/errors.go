package dao

import "Marche/pkg/response"

// 库存台账错误，调用方用 errors.Is 判断
var (
	ErrInvalidQuantity           = response.NewError(42201, "数量必须为非负整数")
	ErrInsufficientStock         = response.NewError(42202, "库存不足")
	ErrInsufficientReservedStock = response.NewError(42203, "预留库存不足")
	ErrReservationExceedsStock   = response.NewError(42204, "调整后库存低于已预留数量")
	ErrStockNotFound             = response.NewError(42205, "库存记录不存在")
)
