package dao

import (
	"Marche/models"
	"context"

	"gorm.io/gorm"
)

type ReturnLog struct {
	Repo[models.ReturnLog]
}

func NewReturnLog(db *gorm.DB) *ReturnLog {
	return &ReturnLog{
		Repo: NewRepo[models.ReturnLog](db),
	}
}

// Append 追加退货审计流水，db 传调用方事务。表只插不改
func (r *ReturnLog) Append(ctx context.Context, db *gorm.DB, logs []models.ReturnLog) error {
	if len(logs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&logs).Error
}

func (r *ReturnLog) ListByOrder(ctx context.Context, orderID int64) ([]*models.ReturnLog, error) {
	var logs []*models.ReturnLog
	err := r.Db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&logs).Error
	return logs, err
}
