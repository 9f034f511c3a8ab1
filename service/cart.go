package service

import (
	"Marche/dao"
	"Marche/dao/cache"
	"Marche/models"
	"Marche/types"
	"context"
	"sort"
)

// CartService 购物车：登录用户落库，游客存 Redis，
// 对外统一成 types.CartLine 一种形状
type CartService struct {
	CartDAO   *dao.Cart
	GuestCart *cache.GuestCartStorage
	Pricing   IPricingService
	StockDAO  *dao.Stock
}

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	AddLine(ctx context.Context, userID *int64, guestToken string, req *types.AddCartLineRequest) error
	UpdateLine(ctx context.Context, userID int64, lineID uint64, qty int) error
	RemoveLine(ctx context.Context, userID int64, lineID uint64) error
	ResolveLines(ctx context.Context, userID *int64, guestToken string, explicit []types.AddCartLineRequest) ([]types.CartLine, error)
	View(ctx context.Context, userID *int64, guestToken string, channel models.Channel) (*types.CartView, error)
	MergeGuestCart(ctx context.Context, userID int64, guestToken string) error
	ClearGuest(ctx context.Context, guestToken string) error
}

func (c *CartService) AddLine(ctx context.Context, userID *int64, guestToken string, req *types.AddCartLineRequest) error {
	if userID != nil {
		return c.CartDAO.Upsert(ctx, *userID, req.StockID, req.Quantity)
	}
	return c.GuestCart.Add(ctx, guestToken, req.StockID, req.Quantity)
}

func (c *CartService) UpdateLine(ctx context.Context, userID int64, lineID uint64, qty int) error {
	return c.CartDAO.UpdateQuantity(ctx, userID, lineID, qty)
}

func (c *CartService) RemoveLine(ctx context.Context, userID int64, lineID uint64) error {
	return c.CartDAO.Delete(ctx, userID, lineID)
}

// ResolveLines 结账入口的行来源归一：
// 显式传行 > 登录用户持久化购物车 > 游客 Redis 购物车
func (c *CartService) ResolveLines(ctx context.Context, userID *int64, guestToken string, explicit []types.AddCartLineRequest) ([]types.CartLine, error) {
	if len(explicit) > 0 {
		lines := make([]types.CartLine, 0, len(explicit))
		for i, e := range explicit {
			lines = append(lines, types.CartLine{
				ID:       uint64(i + 1), // 本地序号
				UserID:   userID,
				StockID:  e.StockID,
				Quantity: e.Quantity,
			})
		}
		return lines, nil
	}

	if userID != nil {
		rows, err := c.CartDAO.ListByUser(ctx, *userID)
		if err != nil {
			return nil, err
		}
		lines := make([]types.CartLine, 0, len(rows))
		for _, r := range rows {
			uid := r.UserID
			lines = append(lines, types.CartLine{
				ID:       r.ID,
				UserID:   &uid,
				StockID:  r.StockID,
				Quantity: r.Quantity,
			})
		}
		return lines, nil
	}

	items, err := c.GuestCart.All(ctx, guestToken)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(items))
	for sid := range items {
		ids = append(ids, sid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]types.CartLine, 0, len(items))
	for i, sid := range ids {
		lines = append(lines, types.CartLine{
			ID:       uint64(i + 1), // 本地序号，不落库
			StockID:  sid,
			Quantity: items[sid],
		})
	}
	return lines, nil
}

// View 购物车展示 + 试算（不占库存）
func (c *CartService) View(ctx context.Context, userID *int64, guestToken string, channel models.Channel) (*types.CartView, error) {
	lines, err := c.ResolveLines(ctx, userID, guestToken, nil)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return &types.CartView{Lines: []types.CartLineView{}}, nil
	}

	bd, err := c.Pricing.PriceCart(ctx, lines, channel, true, nil, types.ShippingInput{})
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.StockID)
	}
	stocks, err := c.StockDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]types.CartLineView, 0, len(lines))
	for i, l := range lines {
		lp := bd.Lines[i]
		avail := 0
		if s, ok := stocks[l.StockID]; ok {
			avail = s.Available()
		}
		views = append(views, types.CartLineView{
			ID:           l.ID,
			StockID:      l.StockID,
			ProductName:  lp.ProductName,
			Quantity:     l.Quantity,
			UnitPrice:    lp.UnitPrice,
			UnitDiscount: lp.UnitDiscount,
			LineTotal:    lp.LineTotal,
			Available:    avail,
		})
	}
	return &types.CartView{Lines: views, Pricing: *bd}, nil
}

// MergeGuestCart 登录后把游客购物车并进持久化购物车，合并后清空 Redis
func (c *CartService) MergeGuestCart(ctx context.Context, userID int64, guestToken string) error {
	items, err := c.GuestCart.All(ctx, guestToken)
	if err != nil {
		return err
	}
	for sid, qty := range items {
		if err := c.CartDAO.Upsert(ctx, userID, sid, qty); err != nil {
			return err
		}
	}
	return c.GuestCart.Clear(ctx, guestToken)
}

func (c *CartService) ClearGuest(ctx context.Context, guestToken string) error {
	return c.GuestCart.Clear(ctx, guestToken)
}
