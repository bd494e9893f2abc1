package persistence

import (
	"context"
	"errors"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIncomeRepository implements finance.IncomeRepository using GORM
type GormIncomeRepository struct {
	db *gorm.DB
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{db: db}
}

// Create creates an income record with its items
func (r *GormIncomeRepository) Create(ctx context.Context, income *finance.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

// Update updates an income record excluding its items
func (r *GormIncomeRepository) Update(ctx context.Context, income *finance.Income) error {
	result := r.db.WithContext(ctx).Omit("Items").Save(income)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an income record and its items
func (r *GormIncomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("income_id = ?", id).Delete(&finance.IncomeItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&finance.Income{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds an income record with items preloaded
func (r *GormIncomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Income, error) {
	var income finance.Income
	if err := r.db.WithContext(ctx).Preload("Items").First(&income, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &income, nil
}

// FindAll finds income records matching the filter
func (r *GormIncomeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.Income, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&finance.Income{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("notes LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var incomes []*finance.Income
	if err := query.Preload("Items").
		Order("date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&incomes).Error; err != nil {
		return nil, 0, err
	}
	return incomes, total, nil
}

// ReplaceItems replaces the income's items and saves recomputed totals
func (r *GormIncomeRepository) ReplaceItems(ctx context.Context, income *finance.Income) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("income_id = ?", income.ID).Delete(&finance.IncomeItem{}).Error; err != nil {
			return err
		}
		if len(income.Items) > 0 {
			if err := tx.Create(&income.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items").Save(income).Error
	})
}
