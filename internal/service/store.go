package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// store 是按 order 排序的内容集合的通用读写实现。
// 相同 order 的记录按写入顺序（自增 seq）排列。
type store[T any] struct {
	db   *gorm.DB
	kind string
}

func newStore[T any](gdb *gorm.DB, kind string) store[T] {
	return store[T]{db: gdb, kind: kind}
}

func (s store[T]) withTx(tx *gorm.DB) store[T] {
	return store[T]{db: tx, kind: s.kind}
}

func (s store[T]) list(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Order("seq ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s store[T]) get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(s.kind, id)
		}
		return nil, err
	}
	return &item, nil
}

func (s store[T]) create(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// update 在事务内读取记录、应用修改并保存，apply 返回错误时整体回滚。
func (s store[T]) update(ctx context.Context, id string, apply func(*T) error) (*T, error) {
	var updated *T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.withTx(tx).get(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(item); err != nil {
			return err
		}
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s store[T]) delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(s.kind, id)
	}
	return nil
}

func (s store[T]) count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error
	return total, err
}
