package identity

import (
	"github.com/garagehub/backend/internal/domain/shared"
)

// Action is one of the four capabilities a permission record can grant
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionView   Action = "view"
	ActionDelete Action = "delete"
)

// ValidAction reports whether a is a known action
func ValidAction(a Action) bool {
	switch a {
	case ActionCreate, ActionEdit, ActionView, ActionDelete:
		return true
	}
	return false
}

// Permission is a stored grant of the four capabilities for a set of users,
// roles and pages. A check passes when the requesting user and page both
// intersect the record's sets and the boolean for the action is true.
type Permission struct {
	shared.BaseEntity
	CanCreate bool `gorm:"not null;default:false" json:"create"`
	CanEdit   bool `gorm:"not null;default:false" json:"edit"`
	CanView   bool `gorm:"not null;default:false" json:"view"`
	CanDelete bool `gorm:"not null;default:false" json:"delete"`

	Users []User `gorm:"many2many:user_permissions" json:"users,omitempty"`
	Roles []Role `gorm:"many2many:permission_roles" json:"roles,omitempty"`
	Pages []Page `gorm:"many2many:permission_pages" json:"pages,omitempty"`
}

// TableName returns the table name for GORM
func (Permission) TableName() string {
	return "permissions"
}

// NewPermission creates a permission record with the given capabilities
func NewPermission(create, edit, view, del bool) *Permission {
	return &Permission{
		BaseEntity: shared.NewBaseEntity(),
		CanCreate:  create,
		CanEdit:    edit,
		CanView:    view,
		CanDelete:  del,
	}
}

// Allows returns the boolean matching the action
func (p *Permission) Allows(action Action) (bool, error) {
	switch action {
	case ActionCreate:
		return p.CanCreate, nil
	case ActionEdit:
		return p.CanEdit, nil
	case ActionView:
		return p.CanView, nil
	case ActionDelete:
		return p.CanDelete, nil
	default:
		return false, shared.NewDomainErrorf("INVALID_INPUT", "unknown action %q", action)
	}
}

// Apply overwrites the capabilities that are present in the patch, keeping
// the others. Used by upserts that must preserve unspecified booleans.
func (p *Permission) Apply(patch PermissionPatch) {
	if patch.Create != nil {
		p.CanCreate = *patch.Create
	}
	if patch.Edit != nil {
		p.CanEdit = *patch.Edit
	}
	if patch.View != nil {
		p.CanView = *patch.View
	}
	if patch.Delete != nil {
		p.CanDelete = *patch.Delete
	}
	p.Touch()
}

// PermissionPatch carries optional capability updates; nil means "keep"
type PermissionPatch struct {
	Create *bool
	Edit   *bool
	View   *bool
	Delete *bool
}
