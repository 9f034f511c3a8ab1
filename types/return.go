package types

import "github.com/shopspring/decimal"

// ProcessReturnRequest 退货请求：支持对一张订单的多行部分/全量退货
type ProcessReturnRequest struct {
	Items  []ReturnItemInput `json:"items" binding:"required,min=1,dive"`
	Reason string            `json:"reason" binding:"required"`
}

type ReturnItemInput struct {
	StockID  uint64 `json:"stock_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// ReturnResult 退货结果：冲减后的订单金额与本批次退款额
type ReturnResult struct {
	OrderID      int64           `json:"order_id"`
	BatchID      string          `json:"batch_id"`
	Status       string          `json:"status"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	NewSubtotal  decimal.Decimal `json:"new_subtotal"`
	NewTax       decimal.Decimal `json:"new_tax"`
	NewTotal     decimal.Decimal `json:"new_total"`
}
