package service

import (
	"Marche/config"
	"Marche/dao"
	"Marche/models"
	"Marche/pkg/log"
	"Marche/pkg/snowflake"
	"Marche/pkg/utils"
	"Marche/types"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutService 把购物车装配成订单：
// 占库存（全部行成功才算数）-> 定价 -> 落订单+明细 -> 调支付网关。
// 占用走逐行原子条件更新，任何一行失败就补偿释放之前已占的行
type CheckoutService struct {
	Config   *config.Config
	DB       *gorm.DB
	StockDAO *dao.Stock
	OrderDAO *dao.Order
	CartDAO  *dao.Cart
	Cart     ICartService
	Pricing  IPricingService
	Address  AddressResolver
	Gateway  PaymentGateway
	Payment  IPaymentService
}

var _ ICheckoutService = (*CheckoutService)(nil)

type ICheckoutService interface {
	PlaceOrder(ctx context.Context, userID *int64, req *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error)
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, userID *int64, req *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error) {
	channel, ok := models.ParseChannel(req.Channel)
	if !ok {
		return nil, fmt.Errorf("未知渠道: %s", req.Channel)
	}

	meta, err := s.buildMeta(req)
	if err != nil {
		return nil, err
	}

	// 1. 行来源归一（显式行 / 持久化购物车 / 游客购物车）
	lines, err := s.Cart.ResolveLines(ctx, userID, req.GuestToken, req.Lines)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. 入参校验，失败必须发生在任何库存变动之前
	if meta.DueDate != nil && !meta.DueDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDueDate, meta.DueDate.Format(time.RFC3339))
	}

	var resolved *types.ResolvedAddress
	if channel == models.ChannelWeb {
		addr, fieldErrs, err := s.Address.Resolve(ctx, req.Address)
		if err != nil {
			return nil, err
		}
		if len(fieldErrs) > 0 {
			return nil, fmt.Errorf("%w: %v", ErrAddressValidationFailed, fieldErrs)
		}
		resolved = addr
	}

	// 3. 逐行占库存。条件更新原子生效，一行失败立即补偿释放已占的行，
	//    绝不留下半截占用
	orderID := snowflake.GenOrderID()
	orderSn := utils.GenerateOrderSn("M", orderID)
	reserved := make([]types.CartLine, 0, len(lines))
	for _, l := range lines {
		if err := s.StockDAO.Reserve(ctx, s.DB, l.StockID, l.Quantity, orderSn); err != nil {
			s.releaseAll(ctx, reserved, orderSn)
			return nil, err
		}
		reserved = append(reserved, l)
	}

	// 4. 定价
	shipping := types.ShippingInput{
		HomeDelivery:   meta.HomeDelivery,
		Override:       meta.ShippingCost,
		CashOnDelivery: meta.Method == models.PaymentMethodCashOnDelivery,
	}
	if resolved != nil {
		shipping.PrefectureID = &resolved.PrefectureID
	}
	bd, err := s.Pricing.PriceCart(ctx, lines, channel, meta.ApplyDiscount, meta.CustomDiscounts, shipping)
	if err != nil {
		s.releaseAll(ctx, reserved, orderSn)
		return nil, err
	}

	// 5. 订单头 + 明细一个事务落库；失败同样补偿释放
	order := s.buildOrder(orderID, orderSn, userID, channel, meta, resolved, bd)
	items := make([]models.OrderItem, 0, len(bd.Lines))
	for _, lp := range bd.Lines {
		items = append(items, models.OrderItem{
			StockID:      lp.StockID,
			ProductName:  lp.ProductName,
			CategoryName: lp.CategoryName,
			BrandName:    lp.BrandName,
			UnitPrice:    lp.UnitPrice,
			UnitDiscount: lp.UnitDiscount, // 实际生效折扣：渠道+阶梯+自定义
			UnitQuantity: lp.Quantity,
			LineTotal:    lp.LineTotal,
		})
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.OrderDAO.CreateWithItems(ctx, tx, order, items); err != nil {
			return err
		}
		if meta.Method == models.PaymentMethodWechat {
			rec := &models.PayRecord{
				OrderSn:     orderSn,
				PayPlatform: 1,
				PayMethod:   meta.Method,
				AmountTotal: bd.GrandTotal,
				Currency:    order.Currency,
				PayStatus:   0,
			}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		// 下单成功清空来源购物车（显式传行时不动购物车）
		if userID != nil && len(req.Lines) == 0 {
			return s.CartDAO.ClearByUser(ctx, tx, *userID)
		}
		return nil
	})
	if err != nil {
		s.releaseAll(ctx, reserved, orderSn)
		return nil, err
	}

	if userID == nil && req.GuestToken != "" && len(req.Lines) == 0 {
		// redis 购物车不在事务里，提交后尽力清理
		if err := s.Cart.ClearGuest(ctx, req.GuestToken); err != nil {
			log.L.Warn("clear guest cart failed", zap.String("token", req.GuestToken), zap.Error(err))
		}
	}

	resp := &types.PlaceOrderResponse{
		OrderID:  order.ID,
		OrderSn:  order.OrderSn,
		OrderRef: order.OrderRef,
		Status:   string(order.OrderStatus),
		Pricing:  *bd,
	}

	// 6. 支付。网关失败不回滚订单也不释放库存，
	//    订单停在 pending，占用由外部对账任务回收
	s.settle(ctx, order, meta, resp)
	return resp, nil
}

// settle 按支付方式分流：现金当场完成、代引等配送、微信走网关预下单
func (s *CheckoutService) settle(ctx context.Context, order *models.Order, meta *types.PaymentMeta, resp *types.PlaceOrderResponse) {
	switch meta.Method {
	case models.PaymentMethodCash:
		if err := s.Payment.Complete(ctx, order.ID, "pos-cash", nil); err != nil {
			log.L.Error("cash settle failed", zap.Int64("order_id", order.ID), zap.Error(err))
			resp.PayMessage = err.Error()
			return
		}
		resp.Status = string(models.OrderStatusPaid)
	case models.PaymentMethodCashOnDelivery:
		// 配送完成后由回调触发 Complete
	default:
		result, err := s.Gateway.ProcessPayment(ctx, order, meta.OpenID)
		if err != nil {
			log.L.Error("gateway error", zap.Int64("order_id", order.ID), zap.Error(err))
			s.markPaymentFailed(ctx, order.ID)
			resp.PayMessage = ErrPaymentFailed.Error()
			return
		}
		if !result.Success {
			log.L.Warn("gateway rejected",
				zap.Int64("order_id", order.ID), zap.String("message", result.Message))
			s.markPaymentFailed(ctx, order.ID)
			resp.PayMessage = result.Message
			return
		}
		resp.PayParams = result.PayParams
		if result.GatewayReference != "" {
			_ = s.OrderDAO.UpdateFields(ctx, s.DB, order.ID, map[string]interface{}{
				"gateway_reference": result.GatewayReference,
			})
		}
	}
}

func (s *CheckoutService) markPaymentFailed(ctx context.Context, orderID int64) {
	if err := s.OrderDAO.UpdateFields(ctx, s.DB, orderID, map[string]interface{}{
		"payment_status": models.PaymentStatusFailed,
	}); err != nil {
		log.L.Error("mark payment failed error", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

// releaseAll 补偿释放：中途失败时把本次已占的行全部退回。
// Release 自身有 reserved_quantity >= qty 守卫，重复补偿不会把占用放穿
func (s *CheckoutService) releaseAll(ctx context.Context, reserved []types.CartLine, orderSn string) {
	for _, l := range reserved {
		if err := s.StockDAO.Release(ctx, s.DB, l.StockID, l.Quantity, orderSn); err != nil {
			log.L.Error("compensating release failed",
				zap.Uint64("stock_id", l.StockID),
				zap.Int("qty", l.Quantity),
				zap.String("order_sn", orderSn),
				zap.Error(err))
		}
	}
}

func (s *CheckoutService) buildOrder(orderID int64, orderSn string, userID *int64, channel models.Channel,
	meta *types.PaymentMeta, resolved *types.ResolvedAddress, bd *types.PricingBreakdown) *models.Order {

	order := &models.Order{
		ID:               orderID,
		OrderSn:          orderSn,
		OrderRef:         utils.GenOrderRef(s.Config.App.OrderSalt, orderID),
		UserID:           userID,
		Channel:          channel,
		Subtotal:         bd.Subtotal,
		TotalDiscount:    bd.TotalDiscount,
		Tax:              bd.Tax,
		ShippingCost:     bd.ShippingCost,
		Total:            bd.GrandTotal,
		PaidAmount:       decimal.Zero,
		DuePaymentAmount: bd.GrandTotal,
		Currency:         s.Config.Commerce.CurrencyCode(),
		PaymentMethod:    meta.Method,
		PaymentStatus:    models.PaymentStatusPending,
		OrderStatus:      channel.InitialOrderStatus(),
		DueDate:          meta.DueDate,
		HomeDelivery:     meta.HomeDelivery,
	}
	if resolved != nil {
		order.CustomerName = resolved.Name
		order.CustomerAddress = resolved.FullAddress
		order.PrefectureID = &resolved.PrefectureID
	}
	return order
}

func (s *CheckoutService) buildMeta(req *types.PlaceOrderRequest) (*types.PaymentMeta, error) {
	meta := &types.PaymentMeta{
		Method:        req.PaymentMethod,
		Currency:      s.Config.Commerce.CurrencyCode(),
		DueDate:       req.DueDate,
		HomeDelivery:  req.HomeDelivery,
		ApplyDiscount: req.ApplyDiscount,
		OpenID:        req.OpenID,
	}
	if req.ShippingCost != nil {
		v, err := decimal.NewFromString(*req.ShippingCost)
		if err != nil {
			return nil, fmt.Errorf("运费格式错误: %w", err)
		}
		meta.ShippingCost = &v
	}
	if len(req.CustomDiscounts) > 0 {
		meta.CustomDiscounts = make(map[uint64]decimal.Decimal, len(req.CustomDiscounts))
		for k, v := range req.CustomDiscounts {
			sid, err := strconv.ParseUint(k, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("自定义折扣 stock_id 错误: %w", err)
			}
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("自定义折扣金额错误: %w", err)
			}
			meta.CustomDiscounts[sid] = d
		}
	}
	return meta, nil
}
