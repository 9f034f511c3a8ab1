package dao

import (
	"Marche/models"
	"context"

	"gorm.io/gorm"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

// CreateWithItems 订单头 + 明细一起写，db 传调用方事务
func (o *Order) CreateWithItems(ctx context.Context, db *gorm.DB, order *models.Order, items []models.OrderItem) error {
	if err := db.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (o *Order) FindWithItems(ctx context.Context, db *gorm.DB, orderID int64) (*models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *Order) FindBySn(ctx context.Context, orderSn string) (*models.Order, error) {
	return o.FindByWhere(ctx, "order_sn = ?", orderSn)
}

// ListByUserCursor 游标分页：按 ID 倒序，多查一条判断 hasMore
func (o *Order) ListByUserCursor(ctx context.Context, userID int64, cursor int64, limit int) ([]*models.Order, error) {
	query := o.Db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	var orders []*models.Order
	err := query.Order("id desc").Limit(limit).Find(&orders).Error
	return orders, err
}

func (o *Order) ListItemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := o.Db.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&items).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int64][]*models.OrderItem)
	for _, it := range items {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, nil
}

// UpdateFields 订单字段更新，db 传调用方事务
func (o *Order) UpdateFields(ctx context.Context, db *gorm.DB, orderID int64, fields map[string]interface{}) error {
	return db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(fields).Error
}

// UpdateItem / DeleteItem 退货时修改明细
func (o *Order) UpdateItem(ctx context.Context, db *gorm.DB, itemID uint64, fields map[string]interface{}) error {
	return db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Updates(fields).Error
}

func (o *Order) DeleteItem(ctx context.Context, db *gorm.DB, itemID uint64) error {
	return db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&models.OrderItem{}).Error
}
