package persistence

import (
	"context"
	"errors"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPageRepository implements identity.PageRepository using GORM
type GormPageRepository struct {
	db *gorm.DB
}

// NewGormPageRepository creates a new GormPageRepository
func NewGormPageRepository(db *gorm.DB) *GormPageRepository {
	return &GormPageRepository{db: db}
}

// Create creates a new page
func (r *GormPageRepository) Create(ctx context.Context, page *identity.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

// Update updates an existing page
func (r *GormPageRepository) Update(ctx context.Context, page *identity.Page) error {
	result := r.db.WithContext(ctx).Save(page)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a page by ID
func (r *GormPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Page{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a page by ID
func (r *GormPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Page, error) {
	var page identity.Page
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &page, nil
}

// FindByIDs finds pages by a set of IDs
func (r *GormPageRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Page, error) {
	var pages []*identity.Page
	if len(ids) == 0 {
		return pages, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// FindByPath finds a page by path
func (r *GormPageRepository) FindByPath(ctx context.Context, path string) (*identity.Page, error) {
	var page identity.Page
	if err := r.db.WithContext(ctx).Where("path = ?", path).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &page, nil
}

// FindAll finds pages matching the filter, returning the total count
func (r *GormPageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Page, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&identity.Page{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR path LIKE ? OR category LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var pages []*identity.Page
	if err := query.Order("category ASC, name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&pages).Error; err != nil {
		return nil, 0, err
	}
	return pages, total, nil
}

// ExistsByName checks if a page with the given name exists
func (r *GormPageRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Page{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// ExistsByPath checks if a page with the given path exists
func (r *GormPageRepository) ExistsByPath(ctx context.Context, path string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Page{}).
		Where("path = ?", path).
		Count(&count).Error
	return count > 0, err
}
