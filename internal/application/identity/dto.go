package identity

import (
	"time"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserDTO represents user data returned to callers
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	RoleID    *uuid.UUID `json:"role_id,omitempty"`
	RoleName  string     `json:"role_name,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toUserDTO(user *identity.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Status:    string(user.Status),
		RoleID:    user.RoleID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Role != nil {
		dto.RoleName = user.Role.Name
	}
	return dto
}

// RoleDTO represents role data returned to callers
type RoleDTO struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Permissions []RolePermissionEntryDTO `json:"permissions,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// RolePermissionEntryDTO is one per-page grant on a role
type RolePermissionEntryDTO struct {
	PageID    uuid.UUID `json:"page_id"`
	CanCreate bool      `json:"create"`
	CanEdit   bool      `json:"edit"`
	CanView   bool      `json:"view"`
	CanDelete bool      `json:"delete"`
}

func toRoleDTO(role *identity.Role) RoleDTO {
	dto := RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Type:        string(role.Type),
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
	for i := range role.Permissions {
		entry := &role.Permissions[i]
		dto.Permissions = append(dto.Permissions, RolePermissionEntryDTO{
			PageID:    entry.PageID,
			CanCreate: entry.CanCreate,
			CanEdit:   entry.CanEdit,
			CanView:   entry.CanView,
			CanDelete: entry.CanDelete,
		})
	}
	return dto
}

// PageDTO represents page data returned to callers
type PageDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Category  string    `json:"category,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPageDTO(page *identity.Page) PageDTO {
	return PageDTO{
		ID:        page.ID,
		Name:      page.Name,
		Path:      page.Path,
		Category:  page.Category,
		IsActive:  page.IsActive,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.UpdatedAt,
	}
}

// PermissionDTO represents a stored permission record
type PermissionDTO struct {
	ID        uuid.UUID   `json:"id"`
	CanCreate bool        `json:"create"`
	CanEdit   bool        `json:"edit"`
	CanView   bool        `json:"view"`
	CanDelete bool        `json:"delete"`
	UserIDs   []uuid.UUID `json:"user_ids,omitempty"`
	RoleIDs   []uuid.UUID `json:"role_ids,omitempty"`
	PageIDs   []uuid.UUID `json:"page_ids,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toPermissionDTO(p *identity.Permission) PermissionDTO {
	dto := PermissionDTO{
		ID:        p.ID,
		CanCreate: p.CanCreate,
		CanEdit:   p.CanEdit,
		CanView:   p.CanView,
		CanDelete: p.CanDelete,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for i := range p.Users {
		dto.UserIDs = append(dto.UserIDs, p.Users[i].ID)
	}
	for i := range p.Roles {
		dto.RoleIDs = append(dto.RoleIDs, p.Roles[i].ID)
	}
	for i := range p.Pages {
		dto.PageIDs = append(dto.PageIDs, p.Pages[i].ID)
	}
	return dto
}

// ListMeta carries pagination metadata for list results
type ListMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// NewListMeta computes pagination metadata
func NewListMeta(page, limit int, total int64) ListMeta {
	totalPage := 0
	if limit > 0 {
		totalPage = int((total + int64(limit) - 1) / int64(limit))
	}
	return ListMeta{Page: page, Limit: limit, Total: total, TotalPage: totalPage}
}
