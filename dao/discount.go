package dao

import (
	"Marche/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DiscountRule struct {
	Repo[models.DiscountRule]
}

func NewDiscountRule(db *gorm.DB) *DiscountRule {
	return &DiscountRule{
		Repo: NewRepo[models.DiscountRule](db),
	}
}

// BestRule 取满足数量门槛的最高阶梯：min_quantity <= qty 中 min_quantity 最大的一条
func (d *DiscountRule) BestRule(ctx context.Context, stockID uint64, qty int) (*models.DiscountRule, error) {
	var rule models.DiscountRule
	err := d.Db.WithContext(ctx).
		Where("stock_id = ? AND min_quantity <= ?", stockID, qty).
		Order("min_quantity desc").
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListByStockIDs 批量取规则（一次结账多行时避免 N 次查询）
func (d *DiscountRule) ListByStockIDs(ctx context.Context, stockIDs []uint64) (map[uint64][]*models.DiscountRule, error) {
	var rows []*models.DiscountRule
	err := d.Db.WithContext(ctx).
		Where("stock_id IN ?", stockIDs).
		Order("min_quantity desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64][]*models.DiscountRule)
	for _, r := range rows {
		out[r.StockID] = append(out[r.StockID], r)
	}
	return out, nil
}
