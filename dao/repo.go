package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用 DAO 基类，按实体嵌入
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) Create(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Create(m).Error
}

func (r Repo[T]) FindById(ctx context.Context, id any) (*T, error) {
	var m T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var m T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) FindAllByWhere(ctx context.Context, where string, args ...any) ([]*T, error) {
	var ms []*T
	if err := r.Db.WithContext(ctx).Where(where, args...).Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Count(&count).Error
	return count > 0, err
}
