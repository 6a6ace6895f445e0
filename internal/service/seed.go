package service

import (
	"context"
	"fmt"

	"github.com/gosecsite/internal/fallback"
	"gorm.io/gorm"
)

// SeedReport 记录每个集合写入的默认记录数。
type SeedReport map[string]int

// SeedDefaults 为空集合写入默认文案，已有数据的集合保持不变。
func SeedDefaults(ctx context.Context, gdb *gorm.DB, content fallback.Content) (SeedReport, error) {
	report := SeedReport{}
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hero := content.Hero
		if err := seedSingleton(ctx, tx, "hero", &hero, report); err != nil {
			return err
		}
		about := content.About
		if err := seedSingleton(ctx, tx, "about", &about, report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx, "programs", content.Programs, report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx, "events", content.Events, report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx, "gallery", content.Gallery, report); err != nil {
			return err
		}
		return seedCollection(ctx, tx, "leadership", content.Leadership, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func seedSingleton[T any](ctx context.Context, tx *gorm.DB, name string, value *T, report SeedReport) error {
	total, err := newStore[T](tx, name).count(ctx)
	if err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	if total > 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	report[name] = 1
	return nil
}

func seedCollection[T any](ctx context.Context, tx *gorm.DB, name string, items []T, report SeedReport) error {
	if len(items) == 0 {
		return nil
	}
	target := newStore[T](tx, name)
	total, err := target.count(ctx)
	if err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	if total > 0 {
		return nil
	}
	for i := range items {
		if err := target.create(ctx, &items[i]); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}
	report[name] = len(items)
	return nil
}
