package service

import (
	"Marche/dao"
	"Marche/models"
	"context"

	"github.com/shopspring/decimal"
)

type DiscountService struct {
	DiscountDAO *dao.DiscountRule
}

var _ IDiscountService = (*DiscountService)(nil)

type IDiscountService interface {
	Resolve(ctx context.Context, stockID uint64, quantity int) (decimal.Decimal, error)
}

// Resolve 取 stock+数量 命中的最高阶梯单件折扣，没有命中返回 0。
// 只读、确定性、无副作用
func (d *DiscountService) Resolve(ctx context.Context, stockID uint64, quantity int) (decimal.Decimal, error) {
	rule, err := d.DiscountDAO.BestRule(ctx, stockID, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	if rule == nil {
		return decimal.Zero, nil
	}
	return rule.Discount, nil
}

// BestTier 纯函数版本：rules 须按 min_quantity 降序，返回第一条满足门槛的折扣
func BestTier(rules []*models.DiscountRule, quantity int) decimal.Decimal {
	for _, r := range rules {
		if r.MinQuantity <= quantity {
			return r.Discount
		}
	}
	return decimal.Zero
}
