package persistence

import (
	"context"
	"errors"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role with its permission entries
func (r *GormRoleRepository) Create(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// Update updates an existing role, excluding permission entries
func (r *GormRoleRepository) Update(ctx context.Context, role *identity.Role) error {
	result := r.db.WithContext(ctx).Omit("Permissions").Save(role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a role and its permission entries
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&identity.RolePermissionEntry{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&identity.Role{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByIDWithPermissions finds a role with its permission entries preloaded
func (r *GormRoleRepository) FindByIDWithPermissions(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).Preload("Permissions").First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByName finds a role by name
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindAll finds roles matching the filter, returning the total count
func (r *GormRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Role, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&identity.Role{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR type LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var roles []*identity.Role
	if err := query.Preload("Permissions").
		Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// ExistsByName checks if a role with the given name exists
func (r *GormRoleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Role{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// ExistsByID checks if a role with the given ID exists
func (r *GormRoleRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Role{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// CountReferencingPage counts roles whose permission entries reference the page
func (r *GormRoleRepository) CountReferencingPage(ctx context.Context, pageID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.RolePermissionEntry{}).
		Where("page_id = ?", pageID).
		Distinct("role_id").
		Count(&count).Error
	return count, err
}

// SavePermissionEntries replaces the role's permission entries
func (r *GormRoleRepository) SavePermissionEntries(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", role.ID).Delete(&identity.RolePermissionEntry{}).Error; err != nil {
			return err
		}
		if len(role.Permissions) == 0 {
			return nil
		}
		return tx.Create(&role.Permissions).Error
	})
}
