package persistence

import (
	"context"
	"errors"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseCategoryRepository implements finance.ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// Create creates a new expense category
func (r *GormExpenseCategoryRepository) Create(ctx context.Context, category *finance.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update updates an existing expense category
func (r *GormExpenseCategoryRepository) Update(ctx context.Context, category *finance.ExpenseCategory) error {
	result := r.db.WithContext(ctx).Save(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an expense category by ID
func (r *GormExpenseCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.ExpenseCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an expense category by ID
func (r *GormExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseCategory, error) {
	var category finance.ExpenseCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds expense categories matching the filter
func (r *GormExpenseCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.ExpenseCategory, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&finance.ExpenseCategory{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var categories []*finance.ExpenseCategory
	if err := query.Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// ExistsByNameAndCode checks for a duplicate (name, code) pair
func (r *GormExpenseCategoryRepository) ExistsByNameAndCode(ctx context.Context, name, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&finance.ExpenseCategory{}).
		Where("name = ? AND code = ?", name, code).
		Count(&count).Error
	return count > 0, err
}

// ExistsByID checks if a category with the given ID exists
func (r *GormExpenseCategoryRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&finance.ExpenseCategory{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// CountExpenses counts expenses referencing the category
func (r *GormExpenseCategoryRepository) CountExpenses(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&finance.Expense{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Create creates an expense with its line items
func (r *GormExpenseRepository) Create(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// Update updates an expense excluding its line items
func (r *GormExpenseRepository) Update(ctx context.Context, expense *finance.Expense) error {
	result := r.db.WithContext(ctx).Omit("Items", "Category").Save(expense)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an expense and its line items
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&finance.ExpenseItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&finance.Expense{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds an expense with items and category preloaded
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Category").
		First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAll finds expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.Expense, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&finance.Expense{})

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

	var expenses []*finance.Expense
	if err := query.Preload("Items").Preload("Category").
		Order("date DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ReplaceItems replaces the expense's line items and saves recomputed totals
func (r *GormExpenseRepository) ReplaceItems(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&finance.ExpenseItem{}).Error; err != nil {
			return err
		}
		if len(expense.Items) > 0 {
			if err := tx.Create(&expense.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items", "Category").Save(expense).Error
	})
}
