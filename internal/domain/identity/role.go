package identity

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RoleType classifies roles. Superadmin bypasses all permission checks.
type RoleType string

const (
	RoleTypeSuperadmin RoleType = "superadmin"
	RoleTypeAdmin      RoleType = "admin"
	RoleTypeManager    RoleType = "manager"
	RoleTypeEmployee   RoleType = "employee"
	RoleTypeUser       RoleType = "user"
)

// ValidRoleType reports whether t is a known role type
func ValidRoleType(t RoleType) bool {
	switch t {
	case RoleTypeSuperadmin, RoleTypeAdmin, RoleTypeManager, RoleTypeEmployee, RoleTypeUser:
		return true
	}
	return false
}

// Role is a named bundle of per-page permission entries
type Role struct {
	shared.BaseEntity
	Name        string                `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Type        RoleType              `gorm:"size:20;not null" json:"type"`
	Description string                `gorm:"size:500" json:"description"`
	Permissions []RolePermissionEntry `gorm:"foreignKey:RoleID" json:"permissions,omitempty"`
}

// RolePermissionEntry grants create/edit/view/delete on one page for a role
type RolePermissionEntry struct {
	shared.BaseEntity
	RoleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_page,priority:1" json:"role_id"`
	PageID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_page,priority:2" json:"page_id"`
	CanCreate bool      `gorm:"not null;default:false" json:"create"`
	CanEdit   bool      `gorm:"not null;default:false" json:"edit"`
	CanView   bool      `gorm:"not null;default:false" json:"view"`
	CanDelete bool      `gorm:"not null;default:false" json:"delete"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// TableName returns the table name for GORM
func (RolePermissionEntry) TableName() string {
	return "role_permission_entries"
}

// NewRole creates a new role
func NewRole(name string, roleType RoleType) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role name cannot be empty")
	}
	if !ValidRoleType(roleType) {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "unknown role type %q", roleType)
	}

	return &Role{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Type:        roleType,
		Permissions: make([]RolePermissionEntry, 0),
	}, nil
}

// IsSuperadmin reports whether this role bypasses permission checks
func (r *Role) IsSuperadmin() bool {
	return r.Type == RoleTypeSuperadmin
}

// GrantPage adds or replaces the permission entry for a page
func (r *Role) GrantPage(pageID uuid.UUID, create, edit, view, del bool) {
	for i := range r.Permissions {
		if r.Permissions[i].PageID == pageID {
			r.Permissions[i].CanCreate = create
			r.Permissions[i].CanEdit = edit
			r.Permissions[i].CanView = view
			r.Permissions[i].CanDelete = del
			r.Permissions[i].Touch()
			r.Touch()
			return
		}
	}
	r.Permissions = append(r.Permissions, RolePermissionEntry{
		BaseEntity: shared.NewBaseEntity(),
		RoleID:     r.ID,
		PageID:     pageID,
		CanCreate:  create,
		CanEdit:    edit,
		CanView:    view,
		CanDelete:  del,
	})
	r.Touch()
}

// ReferencesPage reports whether the role grants anything on the page
func (r *Role) ReferencesPage(pageID uuid.UUID) bool {
	for i := range r.Permissions {
		if r.Permissions[i].PageID == pageID {
			return true
		}
	}
	return false
}
