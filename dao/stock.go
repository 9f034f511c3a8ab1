package dao

import (
	"Marche/models"
	"Marche/types"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Stock struct {
	Repo[models.Stock]
}

func NewStock(db *gorm.DB) *Stock {
	return &Stock{
		Repo: NewRepo[models.Stock](db),
	}
}

// 库存台账：全部走单条条件 UPDATE（compare-and-swap），
// 并发结账时靠行级原子性保证不超卖，绝不做读-改-写两步。
// db 由调用方传入，保证跑在调用方的事务里。

// Reserve 占用库存：reserved_quantity += qty，可售不足时整条不更新
func (s *Stock) Reserve(ctx context.Context, db *gorm.DB, stockID uint64, qty int, refID string) error {
	if qty < 0 {
		return fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}
	res := db.WithContext(ctx).Model(&models.Stock{}).
		Where("id = ? AND quantity - reserved_quantity >= ?", stockID, qty).
		Update("reserved_quantity", gorm.Expr("reserved_quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.classify(ctx, db, stockID, ErrInsufficientStock)
	}
	return s.record(ctx, db, stockID, -qty, models.MovementReserve, refID)
}

// Release 释放占用：结账中途失败的补偿动作，reserved_quantity -= qty
func (s *Stock) Release(ctx context.Context, db *gorm.DB, stockID uint64, qty int, refID string) error {
	if qty < 0 {
		return fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}
	res := db.WithContext(ctx).Model(&models.Stock{}).
		Where("id = ? AND reserved_quantity >= ?", stockID, qty).
		Update("reserved_quantity", gorm.Expr("reserved_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.classify(ctx, db, stockID, ErrInsufficientReservedStock)
	}
	return s.record(ctx, db, stockID, qty, models.MovementRelease, refID)
}

// Consume 支付成功消耗库存：quantity 和 reserved_quantity 同步扣减
func (s *Stock) Consume(ctx context.Context, db *gorm.DB, stockID uint64, qty int, refID string) error {
	if qty < 0 {
		return fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}
	res := db.WithContext(ctx).Model(&models.Stock{}).
		Where("id = ? AND reserved_quantity >= ?", stockID, qty).
		Updates(map[string]interface{}{
			"quantity":          gorm.Expr("quantity - ?", qty),
			"reserved_quantity": gorm.Expr("reserved_quantity - ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.classify(ctx, db, stockID, ErrInsufficientReservedStock)
	}
	return s.record(ctx, db, stockID, -qty, models.MovementConsume, refID)
}

// Restock 退货回补库存，无上限
func (s *Stock) Restock(ctx context.Context, db *gorm.DB, stockID uint64, qty int, refID string) error {
	if qty < 0 {
		return fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}
	res := db.WithContext(ctx).Model(&models.Stock{}).
		Where("id = ?", stockID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: stock %d", ErrStockNotFound, stockID)
	}
	return s.record(ctx, db, stockID, qty, models.MovementRestock, refID)
}

// AdjustQuantity 管理端调整：subtract/replace 不允许把 quantity 调到低于已预留数量
func (s *Stock) AdjustQuantity(ctx context.Context, db *gorm.DB, stockID uint64, qty int, mode string, refID string) error {
	if qty < 0 {
		return fmt.Errorf("%w: qty=%d", ErrInvalidQuantity, qty)
	}

	var res *gorm.DB
	switch mode {
	case types.AdjustModeAdd:
		res = db.WithContext(ctx).Model(&models.Stock{}).
			Where("id = ?", stockID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
	case types.AdjustModeSubtract:
		res = db.WithContext(ctx).Model(&models.Stock{}).
			Where("id = ? AND quantity - ? >= reserved_quantity", stockID, qty).
			Update("quantity", gorm.Expr("quantity - ?", qty))
	case types.AdjustModeReplace:
		res = db.WithContext(ctx).Model(&models.Stock{}).
			Where("id = ? AND reserved_quantity <= ?", stockID, qty).
			Update("quantity", qty)
	default:
		return fmt.Errorf("%w: mode=%s", ErrInvalidQuantity, mode)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.classify(ctx, db, stockID, ErrReservationExceedsStock)
	}
	return s.record(ctx, db, stockID, qty, models.MovementAdjust, refID)
}

// FindByIDs 批量取库存行（定价用）
func (s *Stock) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*models.Stock, error) {
	var rows []*models.Stock
	if err := s.Db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]*models.Stock, len(rows))
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

// ListLowStock 低库存清单：可售数量落到警戒线以内
func (s *Stock) ListLowStock(ctx context.Context) ([]*models.Stock, error) {
	var rows []*models.Stock
	err := s.Db.WithContext(ctx).
		Where("quantity - reserved_quantity <= alert_quantity").
		Order("quantity - reserved_quantity asc").
		Find(&rows).Error
	return rows, err
}

// classify 条件更新没命中行时区分“不存在”和“数量不满足”
func (s *Stock) classify(ctx context.Context, db *gorm.DB, stockID uint64, insufficient error) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Stock{}).Where("id = ?", stockID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: stock %d", ErrStockNotFound, stockID)
	}
	return fmt.Errorf("%w: stock %d", insufficient, stockID)
}

// record 库存变动流水
func (s *Stock) record(ctx context.Context, db *gorm.DB, stockID uint64, delta int, reason, refID string) error {
	mv := &models.StockMovement{
		StockID:  stockID,
		Quantity: delta,
		Reason:   reason,
		RefID:    refID,
	}
	return db.WithContext(ctx).Create(mv).Error
}
