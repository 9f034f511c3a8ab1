package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order 订单主表：一次结账的金额/支付/状态快照
type Order struct {
	ID               int64           `gorm:"primaryKey;column:id" json:"id"` // 雪花ID
	OrderSn          string          `gorm:"column:order_sn;type:varchar(32);not null;uniqueIndex:idx_orders_order_sn" json:"order_sn"`
	OrderRef         string          `gorm:"column:order_ref;type:varchar(16);index:idx_order_ref" json:"order_ref"` // 对外短码
	UserID           *int64          `gorm:"column:user_id;index:idx_user_id" json:"user_id"`                        // 游客订单为 NULL
	Channel          Channel         `gorm:"column:channel;type:varchar(8);not null" json:"channel"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null;column:subtotal" json:"subtotal"` // 折后小计
	TotalDiscount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:total_discount" json:"total_discount"`
	Tax              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:tax" json:"tax"`
	ShippingCost     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:shipping_cost" json:"shipping_cost"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null;column:total" json:"total"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:paid_amount" json:"paid_amount"`
	DuePaymentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:due_payment_amount" json:"due_payment_amount"`
	Currency         string          `gorm:"column:currency;type:varchar(10);default:'JPY'" json:"currency"`
	PaymentMethod    string          `gorm:"column:payment_method;type:varchar(20)" json:"payment_method"`
	PaymentStatus    PaymentStatus   `gorm:"column:payment_status;type:varchar(16);not null;default:'pending'" json:"payment_status"`
	OrderStatus      OrderStatus     `gorm:"column:order_status;type:varchar(24);not null" json:"order_status"`
	DueDate          *time.Time      `gorm:"column:due_date" json:"due_date"`
	HomeDelivery     bool            `gorm:"column:home_delivery;not null;default:false" json:"home_delivery"` // 自宅配送免运费
	CustomerName     string          `gorm:"size:128;column:customer_name" json:"customer_name"`               // 下单时地址快照，创建后不可变
	CustomerAddress  string          `gorm:"size:512;column:customer_address" json:"customer_address"`
	PrefectureID     *uint64         `gorm:"column:prefecture_id" json:"prefecture_id"`
	GatewayReference string          `gorm:"size:64;column:gateway_reference" json:"gateway_reference"`
	PaidAt           *time.Time      `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细：下单时冗余商品快照，锁定成交价，
// 后续改商品目录不影响历史订单
type OrderItem struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID      int64           `gorm:"not null;index:idx_order_items_order_id;column:order_id" json:"order_id"`
	StockID      uint64          `gorm:"not null;index:idx_order_items_stock_id;column:stock_id" json:"stock_id"`
	ProductName  string          `gorm:"size:255;not null;column:product_name" json:"product_name"`
	CategoryName string          `gorm:"size:255;column:category_name" json:"category_name"`
	BrandName    string          `gorm:"size:255;column:brand_name" json:"brand_name"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:unit_price" json:"unit_price"`
	UnitDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:unit_discount" json:"unit_discount"` // 实际生效的单件折扣 = 渠道折扣+阶梯折扣+自定义折扣
	UnitQuantity int             `gorm:"not null;column:unit_quantity" json:"unit_quantity"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;column:line_total" json:"line_total"` // (unit_price - unit_discount) * unit_quantity
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// PayRecord 支付流水记录表
type PayRecord struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderSn       string          `gorm:"column:order_sn;type:varchar(32);not null;uniqueIndex:idx_pay_records_order_sn" json:"order_sn"`
	PayPlatform   int8            `gorm:"column:pay_platform;not null;default:1" json:"pay_platform"` // 1:微信
	PayMethod     string          `gorm:"column:pay_method;type:varchar(20)" json:"pay_method"`
	TransactionId string          `gorm:"column:transaction_id;type:varchar(64);index:idx_transaction_id" json:"transaction_id"`
	OutRequestNo  string          `gorm:"column:out_request_no;type:varchar(64)" json:"out_request_no"` // prepay_id
	AmountTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:amount_total" json:"amount_total"`
	Currency      string          `gorm:"column:currency;type:varchar(10);default:'JPY'" json:"currency"`
	PayStatus     int8            `gorm:"column:pay_status;not null;default:0" json:"pay_status"` // 0:支付中 1:成功 2:失败
	NotifyRaw     datatypes.JSON  `gorm:"column:notify_raw" json:"notify_raw"`
	FinishedAt    *time.Time      `gorm:"column:finished_at" json:"finished_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PayRecord) TableName() string {
	return "pay_records"
}
