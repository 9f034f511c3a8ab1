package dao

import (
	"Marche/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Cart struct {
	Repo[models.CartLine]
}

func NewCart(db *gorm.DB) *Cart {
	return &Cart{
		Repo: NewRepo[models.CartLine](db),
	}
}

// Upsert 同一 user+stock 已有行则数量累加
func (c *Cart) Upsert(ctx context.Context, userID int64, stockID uint64, qty int) error {
	line := &models.CartLine{UserID: userID, StockID: stockID, Quantity: qty}
	return c.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "stock_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", qty)}),
	}).Create(line).Error
}

func (c *Cart) UpdateQuantity(ctx context.Context, userID int64, lineID uint64, qty int) error {
	return c.Db.WithContext(ctx).Model(&models.CartLine{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Update("quantity", qty).Error
}

func (c *Cart) Delete(ctx context.Context, userID int64, lineID uint64) error {
	return c.Db.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartLine{}).Error
}

func (c *Cart) ListByUser(ctx context.Context, userID int64) ([]*models.CartLine, error) {
	var lines []*models.CartLine
	err := c.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error
	return lines, err
}

// ClearByUser 下单成功后清空购物车，db 传调用方事务
func (c *Cart) ClearByUser(ctx context.Context, db *gorm.DB, userID int64) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartLine{}).Error
}
