package identity

import (
	"context"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService handles role management inside one tenant database
type RoleService struct {
	stores identity.StoreResolver
	logger *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(stores identity.StoreResolver, logger *zap.Logger) *RoleService {
	return &RoleService{stores: stores, logger: logger}
}

// CreateRoleInput contains input for creating a role
type CreateRoleInput struct {
	Name        string
	Type        string
	Description string
}

// UpdateRoleInput contains input for updating a role; nil fields are kept
type UpdateRoleInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
}

// PageGrantInput is one per-page grant in a role permission update
type PageGrantInput struct {
	PageID    uuid.UUID
	CanCreate bool
	CanEdit   bool
	CanView   bool
	CanDelete bool
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, tenantDomain string, input CreateRoleInput) (*RoleDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	exists, err := store.Roles().ExistsByName(ctx, input.Name)
	if err != nil {
		s.logger.Error("Failed to check role name existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check role name availability")
	}
	if exists {
		return nil, shared.NewDomainError("ROLE_EXISTS", "A role with this name already exists")
	}

	role, err := identity.NewRole(input.Name, identity.RoleType(input.Type))
	if err != nil {
		return nil, err
	}
	role.Description = input.Description

	if err := store.Roles().Create(ctx, role); err != nil {
		s.logger.Error("Failed to create role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create role")
	}

	s.logger.Info("Role created",
		zap.String("tenant", tenantDomain),
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name))

	dto := toRoleDTO(role)
	return &dto, nil
}

// Update updates a role's name and description
func (s *RoleService) Update(ctx context.Context, tenantDomain string, input UpdateRoleInput) (*RoleDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	role, err := store.Roles().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != role.Name {
		exists, err := store.Roles().ExistsByName(ctx, *input.Name)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check role name availability")
		}
		if exists {
			return nil, shared.NewDomainError("ROLE_EXISTS", "A role with this name already exists")
		}
		role.Name = *input.Name
	}
	if input.Description != nil {
		role.Description = *input.Description
	}
	role.Touch()

	if err := store.Roles().Update(ctx, role); err != nil {
		s.logger.Error("Failed to update role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update role")
	}

	dto := toRoleDTO(role)
	return &dto, nil
}

// Delete removes a role. A role still assigned to users cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	count, err := store.Users().CountByRole(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count users for role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check role usage")
	}
	if count > 0 {
		return shared.NewDomainErrorf("ROLE_IN_USE", "Role is assigned to %d user(s) and cannot be deleted", count)
	}

	if err := store.Roles().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Role deleted",
		zap.String("tenant", tenantDomain),
		zap.String("role_id", id.String()))
	return nil
}

// Get returns one role with its per-page entries
func (s *RoleService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*RoleDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	role, err := store.Roles().FindByIDWithPermissions(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoleDTO(role)
	return &dto, nil
}

// List returns roles matching the filter
func (s *RoleService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]RoleDTO, ListMeta, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	roles, total, err := store.Roles().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]RoleDTO, 0, len(roles))
	for _, role := range roles {
		dtos = append(dtos, toRoleDTO(role))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}

// UpdatePermissions replaces the role's per-page grants with the given set
// and pushes the new capabilities down to the permission records of every
// user currently holding the role. Every referenced page must exist.
func (s *RoleService) UpdatePermissions(ctx context.Context, tenantDomain string, roleID uuid.UUID, grants []PageGrantInput) (*RoleDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	role, err := store.Roles().FindByIDWithPermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}

	role.Permissions = role.Permissions[:0]
	pageIDs := make([]uuid.UUID, 0, len(grants))
	for _, grant := range grants {
		if role.ReferencesPage(grant.PageID) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Duplicate page in permission update")
		}
		role.GrantPage(grant.PageID, grant.CanCreate, grant.CanEdit, grant.CanView, grant.CanDelete)
		pageIDs = append(pageIDs, grant.PageID)
	}
	pages, err := store.Pages().FindByIDs(ctx, pageIDs)
	if err != nil {
		s.logger.Error("Failed to load pages", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate pages")
	}
	if len(pages) != len(pageIDs) {
		return nil, shared.NewDomainError("PAGE_NOT_FOUND", "One or more pages do not exist")
	}

	holders, err := store.Users().FindByRole(ctx, roleID)
	if err != nil {
		s.logger.Error("Failed to load users for role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load role members")
	}

	err = store.Transaction(ctx, func(tx identity.Store) error {
		if err := tx.Roles().SavePermissionEntries(ctx, role); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to save role permissions")
		}
		for _, holder := range holders {
			for _, grant := range grants {
				if err := upsertMemberPermission(ctx, tx, holder.ID, roleID, grant); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update role permissions", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Role permissions updated",
		zap.String("tenant", tenantDomain),
		zap.String("role_id", roleID.String()),
		zap.Int("pages", len(grants)),
		zap.Int("members", len(holders)))

	dto := toRoleDTO(role)
	return &dto, nil
}

// upsertMemberPermission writes the role grant through to one member's
// permission record for the page. The role grant is authoritative, so all
// four capabilities are overwritten.
func upsertMemberPermission(ctx context.Context, store identity.Store, userID, roleID uuid.UUID, grant PageGrantInput) error {
	existing, err := store.Permissions().FindForUserRolePage(ctx, userID, roleID, grant.PageID)
	if err == nil {
		existing.CanCreate = grant.CanCreate
		existing.CanEdit = grant.CanEdit
		existing.CanView = grant.CanView
		existing.CanDelete = grant.CanDelete
		existing.Touch()
		if err := store.Permissions().Update(ctx, existing); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to update permission record")
		}
		return nil
	}
	if !shared.IsDomainError(err, "NOT_FOUND") {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to look up permission record")
	}

	record := identity.NewPermission(grant.CanCreate, grant.CanEdit, grant.CanView, grant.CanDelete)
	if err := store.Permissions().Create(ctx, record); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to create permission record")
	}
	if err := store.Users().AttachPermission(ctx, userID, record.ID); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to attach user to permission")
	}
	if err := store.Permissions().ReplaceRoles(ctx, record, []uuid.UUID{roleID}); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to attach role to permission")
	}
	if err := store.Permissions().ReplacePages(ctx, record, []uuid.UUID{grant.PageID}); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to attach page to permission")
	}
	return nil
}
