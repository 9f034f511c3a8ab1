package service

import (
	"Marche/config"
	"Marche/dao"
	"Marche/models"
	"Marche/pkg/log"
	"Marche/types"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReturnService 退货处理：回补库存、冲减订单金额、落审计流水。
// 整个操作一个事务，要么全部生效要么全部不生效
type ReturnService struct {
	Config    *config.Config
	DB        *gorm.DB
	OrderDAO  *dao.Order
	StockDAO  *dao.Stock
	ReturnDAO *dao.ReturnLog
	Events    *OrderEventProducer
}

var _ IReturnService = (*ReturnService)(nil)

type IReturnService interface {
	Process(ctx context.Context, orderID int64, actorID int64, req *types.ProcessReturnRequest) (*types.ReturnResult, error)
}

func (s *ReturnService) Process(ctx context.Context, orderID int64, actorID int64, req *types.ProcessReturnRequest) (*types.ReturnResult, error) {
	batchID := uuid.NewString()
	var (
		result    *types.ReturnResult
		origOrder *models.Order
		refund    decimal.Decimal
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.OrderDAO.FindWithItems(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
			}
			return err
		}
		origOrder = order

		// 只有已支付（含已部分退货）的订单可退
		if !order.OrderStatus.CanTransition(models.OrderStatusPartiallyReturned) &&
			!order.OrderStatus.CanTransition(models.OrderStatusReturned) {
			return fmt.Errorf("%w: 当前状态 %s", ErrOrderNotReturnable, order.OrderStatus)
		}

		byStock := make(map[uint64]*models.OrderItem, len(order.Items))
		for i := range order.Items {
			byStock[order.Items[i].StockID] = &order.Items[i]
		}

		// 先整体校验，任何一行超量就整单拒绝，不产生半截回补
		for _, in := range req.Items {
			item, ok := byStock[in.StockID]
			if !ok {
				return fmt.Errorf("%w: 订单中无该商品 stock_id=%d", ErrExcessiveReturnQuantity, in.StockID)
			}
			if in.Quantity > item.UnitQuantity {
				return fmt.Errorf("%w: stock_id=%d 可退 %d 件，请求 %d 件",
					ErrExcessiveReturnQuantity, in.StockID, item.UnitQuantity, in.Quantity)
			}
		}

		totalReduction := decimal.Zero
		discountReduction := decimal.Zero
		logs := make([]models.ReturnLog, 0, len(req.Items))

		for _, in := range req.Items {
			item := byStock[in.StockID]
			qty := decimal.NewFromInt(int64(in.Quantity))
			lineReduction := item.UnitPrice.Sub(item.UnitDiscount).Mul(qty)
			totalReduction = totalReduction.Add(lineReduction)
			discountReduction = discountReduction.Add(item.UnitDiscount.Mul(qty))

			if err := s.StockDAO.Restock(ctx, tx, in.StockID, in.Quantity, order.OrderSn); err != nil {
				return err
			}

			remaining := item.UnitQuantity - in.Quantity
			if remaining == 0 {
				if err := s.OrderDAO.DeleteItem(ctx, tx, item.ID); err != nil {
					return err
				}
			} else {
				newLineTotal := item.UnitPrice.Sub(item.UnitDiscount).Mul(decimal.NewFromInt(int64(remaining)))
				if err := s.OrderDAO.UpdateItem(ctx, tx, item.ID, map[string]interface{}{
					"unit_quantity": remaining,
					"line_total":    newLineTotal,
				}); err != nil {
					return err
				}
			}
			item.UnitQuantity = remaining

			logs = append(logs, models.ReturnLog{
				BatchID:  batchID,
				OrderID:  order.ID,
				StockID:  in.StockID,
				Quantity: in.Quantity,
				Amount:   lineReduction,
				Reason:   req.Reason,
				ActorID:  actorID,
			})
		}

		// 金额冲减：小计按行缩减，税按新小计重算，运费不退
		taxRate := order.Channel.TaxRate(s.Config.Commerce)
		newSubtotal := order.Subtotal.Sub(totalReduction)
		newTax := newSubtotal.Mul(taxRate).Round(2)
		newTotal := newSubtotal.Add(newTax).Add(order.ShippingCost)
		refund = order.Total.Sub(newTotal)

		allReturned := true
		for i := range order.Items {
			if order.Items[i].UnitQuantity > 0 {
				allReturned = false
				break
			}
		}
		newStatus := models.OrderStatusPartiallyReturned
		if allReturned {
			newStatus = models.OrderStatusReturned
		}
		if !order.OrderStatus.CanTransition(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrOrderNotReturnable, order.OrderStatus, newStatus)
		}

		if err := s.OrderDAO.UpdateFields(ctx, tx, order.ID, map[string]interface{}{
			"subtotal":       newSubtotal,
			"total_discount": order.TotalDiscount.Sub(discountReduction),
			"tax":            newTax,
			"total":          newTotal,
			"paid_amount":    newTotal,
			"order_status":   newStatus,
		}); err != nil {
			return err
		}

		if err := s.ReturnDAO.Append(ctx, tx, logs); err != nil {
			return err
		}

		result = &types.ReturnResult{
			OrderID:      order.ID,
			BatchID:      batchID,
			Status:       string(newStatus),
			RefundAmount: refund,
			NewSubtotal:  newSubtotal,
			NewTax:       newTax,
			NewTotal:     newTotal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.L.Info("return processed",
		zap.Int64("order_id", orderID),
		zap.String("batch_id", batchID),
		zap.String("refund", refund.String()))
	s.Events.OrderReturned(ctx, origOrder, refund)
	return result, nil
}
