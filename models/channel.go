package models

import (
	"Marche/config"

	"github.com/shopspring/decimal"
)

// Channel 销售渠道，价格/折扣/税率的字段选择都收在这里，
// 避免调用方到处散落 "web"/"pos" 字符串分支
type Channel string

const (
	ChannelWeb Channel = "web"
	ChannelPos Channel = "pos"
)

func ParseChannel(s string) (Channel, bool) {
	switch Channel(s) {
	case ChannelWeb, ChannelPos:
		return Channel(s), true
	}
	return "", false
}

// Price 渠道单价
func (c Channel) Price(s *Stock) decimal.Decimal {
	if c == ChannelPos {
		return s.PosPrice
	}
	return s.WebPrice
}

// BaseDiscount 渠道固定单件折扣
func (c Channel) BaseDiscount(s *Stock) decimal.Decimal {
	if c == ChannelPos {
		return s.PosDiscount
	}
	return s.WebDiscount
}

// TaxRate 渠道税率：POS 走默认消费税率，Web 走增值税率
func (c Channel) TaxRate(conf *config.Commerce) decimal.Decimal {
	if c == ChannelPos {
		return conf.PosRate()
	}
	return conf.WebRate()
}

// InitialOrderStatus 下单时的初始订单状态
func (c Channel) InitialOrderStatus() OrderStatus {
	if c == ChannelPos {
		return OrderStatusPos
	}
	return OrderStatusPending
}
