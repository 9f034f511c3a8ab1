package service

import (
	"Marche/dao"
	"Marche/models"
	"Marche/pkg/log"
	"Marche/types"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentGateway 支付网关抽象。微信 jsapi 是默认实现，
// 测试里用假网关
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, order *models.Order, openID string) (*types.GatewayResult, error)
}

// NoopGateway 未配置网关时的兜底：一律成功，不产生外部副作用
type NoopGateway struct{}

func (NoopGateway) ProcessPayment(_ context.Context, order *models.Order, _ string) (*types.GatewayResult, error) {
	return &types.GatewayResult{
		Success:          true,
		GatewayReference: fmt.Sprintf("noop-%d", order.ID),
	}, nil
}

// PaymentService 支付完成处理：确认收款后把占用转成消耗。
// Complete 幂等，网关回调重放不会二次扣库存
type PaymentService struct {
	DB       *gorm.DB
	OrderDAO *dao.Order
	StockDAO *dao.Stock
	Events   *OrderEventProducer
}

var _ IPaymentService = (*PaymentService)(nil)

type IPaymentService interface {
	Complete(ctx context.Context, orderID int64, gatewayRef string, notifyRaw []byte) error
	CompleteBySn(ctx context.Context, orderSn string, gatewayRef string, notifyRaw []byte) error
	StatusBySn(ctx context.Context, orderSn string) (*types.PayStatus, error)
}

// StatusBySn 支付状态查询，前端 prepay 后轮询
func (s *PaymentService) StatusBySn(ctx context.Context, orderSn string) (*types.PayStatus, error) {
	order, err := s.OrderDAO.FindBySn(ctx, orderSn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderSn)
		}
		return nil, err
	}
	return &types.PayStatus{
		OrderSn:          order.OrderSn,
		PaymentStatus:    string(order.PaymentStatus),
		OrderStatus:      string(order.OrderStatus),
		PaidAmount:       order.PaidAmount,
		DuePaymentAmount: order.DuePaymentAmount,
		GatewayReference: order.GatewayReference,
		PaidAt:           order.PaidAt,
	}, nil
}

func (s *PaymentService) CompleteBySn(ctx context.Context, orderSn string, gatewayRef string, notifyRaw []byte) error {
	order, err := s.OrderDAO.FindBySn(ctx, orderSn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, orderSn)
		}
		return err
	}
	return s.Complete(ctx, order.ID, gatewayRef, notifyRaw)
}

// Complete 一个事务内完成：
//  1. 条件更新 payment_status 抢占幂等闸：0 行说明已处理过，直接返回
//  2. 逐行 Consume（占用和现货同时扣减）
//  3. 订单状态推进到 paid
func (s *PaymentService) Complete(ctx context.Context, orderID int64, gatewayRef string, notifyRaw []byte) error {
	var paidOrder *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.OrderDAO.FindWithItems(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
			}
			return err
		}

		// 幂等闸。重放的回调在这里被条件更新挡掉
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status <> ?", orderID, models.PaymentStatusPaid).
			Update("payment_status", models.PaymentStatusPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.L.Info("payment already completed, skip", zap.Int64("order_id", orderID))
			return nil
		}

		for _, it := range order.Items {
			if err := s.StockDAO.Consume(ctx, tx, it.StockID, it.UnitQuantity, order.OrderSn); err != nil {
				return err
			}
		}

		now := time.Now()
		fields := map[string]interface{}{
			"order_status":       models.OrderStatusPaid,
			"paid_amount":        order.Total,
			"due_payment_amount": 0,
			"paid_at":            now,
		}
		if gatewayRef != "" {
			fields["gateway_reference"] = gatewayRef
		}
		if err := s.OrderDAO.UpdateFields(ctx, tx, orderID, fields); err != nil {
			return err
		}

		if len(notifyRaw) > 0 {
			if err := tx.Model(&models.PayRecord{}).
				Where("order_sn = ?", order.OrderSn).
				Updates(map[string]interface{}{
					"pay_status":     1,
					"transaction_id": gatewayRef,
					"notify_raw":     notifyRaw,
					"finished_at":    now,
				}).Error; err != nil {
				return err
			}
		}

		paidOrder = order
		return nil
	})
	if err != nil {
		return err
	}

	// 事务外发事件，发送失败只记日志
	if paidOrder != nil {
		s.Events.OrderPaid(ctx, paidOrder)
	}
	return nil
}
