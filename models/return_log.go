package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ReturnLog 退货审计流水，只追加不修改
type ReturnLog struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BatchID   string          `gorm:"size:36;not null;index:idx_batch_id;column:batch_id" json:"batch_id"` // 同一次退货操作共享一个批次号
	OrderID   int64           `gorm:"not null;index:idx_return_logs_order_id;column:order_id" json:"order_id"`
	StockID   uint64          `gorm:"not null;index:idx_return_logs_stock_id;column:stock_id" json:"stock_id"`
	Quantity  int             `gorm:"not null;column:quantity" json:"quantity"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:amount" json:"amount"` // 本行冲减金额
	Reason    string          `gorm:"size:255;column:reason" json:"reason"`
	ActorID   int64           `gorm:"column:actor_id" json:"actor_id"` // 操作员
	Meta      datatypes.JSON  `gorm:"column:meta" json:"meta"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReturnLog) TableName() string {
	return "return_logs"
}
