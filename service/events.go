package service

import (
	"Marche/models"
	"Marche/pkg/log"
	"Marche/pkg/rocketmq"
	"context"
	"encoding/json"
	"time"

	rmq "github.com/apache/rocketmq-client-go/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	TopicOrderPaid     = "order_paid"
	TopicOrderReturned = "order_returned"
)

// OrderEvent 订单事件信封。EventID 供下游做消费幂等
type OrderEvent struct {
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	OrderID    int64           `json:"order_id"`
	OrderSn    string          `json:"order_sn"`
	Channel    string          `json:"channel"`
	Total      decimal.Decimal `json:"total"`
	Refund     decimal.Decimal `json:"refund,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// OrderEventProducer 订单事件广播。Producer 为 nil 时全部降级为 no-op，
// 消息发送失败只记日志，不影响主流程
type OrderEventProducer struct {
	Producer rmq.Producer
}

func NewOrderEventProducer(p rmq.Producer) *OrderEventProducer {
	return &OrderEventProducer{Producer: p}
}

func (e *OrderEventProducer) OrderPaid(_ context.Context, order *models.Order) {
	e.publish(TopicOrderPaid, OrderEvent{
		EventID:    uuid.NewString(),
		Type:       TopicOrderPaid,
		OrderID:    order.ID,
		OrderSn:    order.OrderSn,
		Channel:    string(order.Channel),
		Total:      order.Total,
		OccurredAt: time.Now(),
	})
}

func (e *OrderEventProducer) OrderReturned(_ context.Context, order *models.Order, refund decimal.Decimal) {
	e.publish(TopicOrderReturned, OrderEvent{
		EventID:    uuid.NewString(),
		Type:       TopicOrderReturned,
		OrderID:    order.ID,
		OrderSn:    order.OrderSn,
		Channel:    string(order.Channel),
		Total:      order.Total,
		Refund:     refund,
		OccurredAt: time.Now(),
	})
}

func (e *OrderEventProducer) publish(topic string, ev OrderEvent) {
	if e == nil || e.Producer == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.L.Error("marshal order event failed", zap.Error(err))
		return
	}
	if err := rocketmq.SendMsg(e.Producer, topic, body); err != nil {
		log.L.Error("publish order event failed",
			zap.String("topic", topic), zap.String("event_id", ev.EventID), zap.Error(err))
	}
}
