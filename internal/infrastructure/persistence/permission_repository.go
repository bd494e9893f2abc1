package persistence

import (
	"context"
	"errors"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPermissionRepository implements identity.PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// Create creates a new permission record
func (r *GormPermissionRepository) Create(ctx context.Context, permission *identity.Permission) error {
	return r.db.WithContext(ctx).Omit("Users", "Roles", "Pages").Create(permission).Error
}

// Update updates the capability booleans of a permission record
func (r *GormPermissionRepository) Update(ctx context.Context, permission *identity.Permission) error {
	result := r.db.WithContext(ctx).Omit("Users", "Roles", "Pages").Save(permission)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a permission record and its associations
func (r *GormPermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	permission := identity.Permission{BaseEntity: shared.BaseEntity{ID: id}}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&permission).Association("Users").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&permission).Association("Roles").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&permission).Association("Pages").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&identity.Permission{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a permission record with associations preloaded
func (r *GormPermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Permission, error) {
	var permission identity.Permission
	if err := r.db.WithContext(ctx).
		Preload("Users").Preload("Roles").Preload("Pages").
		First(&permission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &permission, nil
}

// FindAll finds permission records, returning the total count
func (r *GormPermissionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Permission, int64, error) {
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&identity.Permission{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if len(filter.Fields) > 0 {
		query = query.Select(filter.Fields)
	}

	var permissions []*identity.Permission
	if err := query.Preload("Users").Preload("Roles").Preload("Pages").
		Order("created_at ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&permissions).Error; err != nil {
		return nil, 0, err
	}
	return permissions, total, nil
}

// FindMatching returns permission records whose user set intersects userIDs
// and whose page set intersects pageIDs, oldest first. Matching is
// existence-based across the association sets, not an exact pair lookup.
func (r *GormPermissionRepository) FindMatching(ctx context.Context, userIDs, pageIDs []uuid.UUID) ([]*identity.Permission, error) {
	if len(userIDs) == 0 || len(pageIDs) == 0 {
		return nil, nil
	}

	var permissions []*identity.Permission
	err := r.db.WithContext(ctx).
		Distinct("permissions.*").
		Joins("JOIN user_permissions up ON up.permission_id = permissions.id").
		Joins("JOIN permission_pages pp ON pp.permission_id = permissions.id").
		Where("up.user_id IN ?", userIDs).
		Where("pp.page_id IN ?", pageIDs).
		Order("permissions.created_at ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// FindForUserRolePage returns the record attached to exactly this
// (user, role, page) triple
func (r *GormPermissionRepository) FindForUserRolePage(ctx context.Context, userID, roleID, pageID uuid.UUID) (*identity.Permission, error) {
	var permission identity.Permission
	err := r.db.WithContext(ctx).
		Joins("JOIN user_permissions up ON up.permission_id = permissions.id").
		Joins("JOIN permission_roles pr ON pr.permission_id = permissions.id").
		Joins("JOIN permission_pages pp ON pp.permission_id = permissions.id").
		Where("up.user_id = ? AND pr.role_id = ? AND pp.page_id = ?", userID, roleID, pageID).
		First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &permission, nil
}

// ReplaceUsers replaces the permission record's user set
func (r *GormPermissionRepository) ReplaceUsers(ctx context.Context, permission *identity.Permission, userIDs []uuid.UUID) error {
	users := make([]identity.User, len(userIDs))
	for i, id := range userIDs {
		users[i] = identity.User{BaseEntity: shared.BaseEntity{ID: id}}
	}
	return r.db.WithContext(ctx).Model(permission).Association("Users").Replace(&users)
}

// ReplaceRoles replaces the permission record's role set
func (r *GormPermissionRepository) ReplaceRoles(ctx context.Context, permission *identity.Permission, roleIDs []uuid.UUID) error {
	roles := make([]identity.Role, len(roleIDs))
	for i, id := range roleIDs {
		roles[i] = identity.Role{BaseEntity: shared.BaseEntity{ID: id}}
	}
	return r.db.WithContext(ctx).Model(permission).Association("Roles").Replace(&roles)
}

// ReplacePages replaces the permission record's page set
func (r *GormPermissionRepository) ReplacePages(ctx context.Context, permission *identity.Permission, pageIDs []uuid.UUID) error {
	pages := make([]identity.Page, len(pageIDs))
	for i, id := range pageIDs {
		pages[i] = identity.Page{BaseEntity: shared.BaseEntity{ID: id}}
	}
	return r.db.WithContext(ctx).Model(permission).Association("Pages").Replace(&pages)
}
