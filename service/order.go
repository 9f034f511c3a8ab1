package service

import (
	"Marche/dao"
	"Marche/models"
	"Marche/types"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// OrderService 订单查询侧：游标分页列表 + 详情
type OrderService struct {
	DB       *gorm.DB
	OrderDAO *dao.Order
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	List(ctx context.Context, userID int64, cursor int64, limit int) (*types.OrderListResponse, error)
	Detail(ctx context.Context, orderID int64) (*types.OrderDetail, error)
	DetailBySn(ctx context.Context, orderSn string) (*types.OrderDetail, error)
}

// List 按创建时间倒序游标分页。cursor 传上一页最后一单的雪花 ID，
// 雪花 ID 单调递增，天然可作时间游标
func (s *OrderService) List(ctx context.Context, userID int64, cursor int64, limit int) (*types.OrderListResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	// 多取一条探测是否还有下一页
	orders, err := s.OrderDAO.ListByUserCursor(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemsByOrder, err := s.OrderDAO.ListItemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]*types.OrderSummary, 0, len(orders))
	var nextCursor int64
	for _, o := range orders {
		items := itemsByOrder[o.ID]
		first := ""
		if len(items) > 0 {
			first = items[0].ProductName
		}
		summaries = append(summaries, &types.OrderSummary{
			ID:        o.ID,
			OrderSn:   o.OrderSn,
			OrderRef:  o.OrderRef,
			Channel:   string(o.Channel),
			Total:     o.Total,
			Status:    string(o.OrderStatus),
			PayStatus: string(o.PaymentStatus),
			ItemCount: len(items),
			FirstItem: first,
			Created:   o.CreatedAt,
		})
		nextCursor = o.ID
	}

	return &types.OrderListResponse{
		Orders:     summaries,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (s *OrderService) Detail(ctx context.Context, orderID int64) (*types.OrderDetail, error) {
	order, err := s.OrderDAO.FindWithItems(ctx, s.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	return toDetail(order), nil
}

func (s *OrderService) DetailBySn(ctx context.Context, orderSn string) (*types.OrderDetail, error) {
	order, err := s.OrderDAO.FindBySn(ctx, orderSn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderSn)
		}
		return nil, err
	}
	return s.Detail(ctx, order.ID)
}

func toDetail(o *models.Order) *types.OrderDetail {
	items := make([]types.OrderItemDetail, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, types.OrderItemDetail{
			ID:           it.ID,
			StockID:      it.StockID,
			ProductName:  it.ProductName,
			UnitPrice:    it.UnitPrice,
			UnitDiscount: it.UnitDiscount,
			UnitQuantity: it.UnitQuantity,
			LineTotal:    it.LineTotal,
		})
	}
	return &types.OrderDetail{
		ID:               o.ID,
		OrderSn:          o.OrderSn,
		OrderRef:         o.OrderRef,
		Channel:          string(o.Channel),
		Subtotal:         o.Subtotal,
		TotalDiscount:    o.TotalDiscount,
		Tax:              o.Tax,
		ShippingCost:     o.ShippingCost,
		Total:            o.Total,
		PaidAmount:       o.PaidAmount,
		DuePaymentAmount: o.DuePaymentAmount,
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    string(o.PaymentStatus),
		OrderStatus:      string(o.OrderStatus),
		DueDate:          o.DueDate,
		Items:            items,
		Created:          o.CreatedAt,
	}
}
