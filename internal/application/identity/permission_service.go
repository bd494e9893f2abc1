package identity

import (
	"context"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionService evaluates and manages stored permission records
type PermissionService struct {
	stores identity.StoreResolver
	logger *zap.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(stores identity.StoreResolver, logger *zap.Logger) *PermissionService {
	return &PermissionService{stores: stores, logger: logger}
}

// CheckInput identifies one permission check
type CheckInput struct {
	UserID   uuid.UUID
	PagePath string
	Action   identity.Action
}

// Check decides whether the user may perform the action on the page.
//
// Users whose role is of type superadmin bypass the stored records entirely.
// Otherwise the check passes when the oldest permission record whose user set
// contains the user and whose page set contains the page grants the action.
// No matching record means denial, not an error.
func (s *PermissionService) Check(ctx context.Context, tenantDomain string, input CheckInput) (bool, error) {
	if !identity.ValidAction(input.Action) {
		return false, shared.NewDomainErrorf("INVALID_INPUT", "unknown action %q", input.Action)
	}

	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return false, err
	}

	user, err := store.Users().FindByIDWithRole(ctx, input.UserID)
	if err != nil {
		return false, err
	}
	if user.Role != nil && user.Role.IsSuperadmin() {
		return true, nil
	}

	page, err := store.Pages().FindByPath(ctx, input.PagePath)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			// Unknown page: nothing can have been granted on it.
			return false, nil
		}
		return false, err
	}
	if !page.IsActive {
		return false, nil
	}

	matches, err := store.Permissions().FindMatching(ctx, []uuid.UUID{user.ID}, []uuid.UUID{page.ID})
	if err != nil {
		s.logger.Error("Failed to query permission records", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to evaluate permissions")
	}
	if len(matches) == 0 {
		return false, nil
	}

	// Records are ordered oldest first; the first match decides.
	return matches[0].Allows(input.Action)
}

// GrantInput contains input for granting permissions to user/role/page sets.
// Nil capability fields preserve whatever an existing record already grants.
type GrantInput struct {
	UserIDs []uuid.UUID
	RoleIDs []uuid.UUID
	PageIDs []uuid.UUID
	Create  *bool
	Edit    *bool
	View    *bool
	Delete  *bool
}

// Grant upserts one permission record per (user, role, page) combination.
// An existing record for the exact triple is patched in place, keeping the
// capabilities the input leaves unset; otherwise a fresh record is created
// with unset capabilities defaulting to false.
func (s *PermissionService) Grant(ctx context.Context, tenantDomain string, input GrantInput) ([]PermissionDTO, error) {
	// Repeated IDs collapse to one grant, so the existence checks below
	// compare against the distinct sets.
	userIDs := dedupe(input.UserIDs)
	roleIDs := dedupe(input.RoleIDs)
	pageIDs := dedupe(input.PageIDs)
	if len(userIDs) == 0 || len(roleIDs) == 0 || len(pageIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Users, roles and pages are all required")
	}

	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	users, err := store.Users().FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load users")
	}
	if len(users) != len(userIDs) {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "One or more users do not exist")
	}
	pages, err := store.Pages().FindByIDs(ctx, pageIDs)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load pages")
	}
	if len(pages) != len(pageIDs) {
		return nil, shared.NewDomainError("PAGE_NOT_FOUND", "One or more pages do not exist")
	}
	for _, roleID := range roleIDs {
		exists, err := store.Roles().ExistsByID(ctx, roleID)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate roles")
		}
		if !exists {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "One or more roles do not exist")
		}
	}

	patch := identity.PermissionPatch{
		Create: input.Create,
		Edit:   input.Edit,
		View:   input.View,
		Delete: input.Delete,
	}

	var results []PermissionDTO
	err = store.Transaction(ctx, func(tx identity.Store) error {
		for _, userID := range userIDs {
			for _, roleID := range roleIDs {
				for _, pageID := range pageIDs {
					dto, err := s.upsertOne(ctx, tx, userID, roleID, pageID, patch)
					if err != nil {
						return err
					}
					results = append(results, *dto)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Permissions granted",
		zap.String("tenant", tenantDomain),
		zap.Int("users", len(userIDs)),
		zap.Int("roles", len(roleIDs)),
		zap.Int("pages", len(pageIDs)))
	return results, nil
}

// dedupe drops repeated IDs, keeping first-seen order
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *PermissionService) upsertOne(ctx context.Context, store identity.Store, userID, roleID, pageID uuid.UUID, patch identity.PermissionPatch) (*PermissionDTO, error) {
	existing, err := store.Permissions().FindForUserRolePage(ctx, userID, roleID, pageID)
	if err == nil {
		existing.Apply(patch)
		if err := store.Permissions().Update(ctx, existing); err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update permission record")
		}
		dto := toPermissionDTO(existing)
		return &dto, nil
	}
	if !shared.IsDomainError(err, "NOT_FOUND") {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to look up permission record")
	}

	boolOf := func(v *bool) bool { return v != nil && *v }
	record := identity.NewPermission(boolOf(patch.Create), boolOf(patch.Edit), boolOf(patch.View), boolOf(patch.Delete))

	if err := store.Permissions().Create(ctx, record); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create permission record")
	}
	if err := store.Permissions().ReplaceUsers(ctx, record, []uuid.UUID{userID}); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach user to permission")
	}
	if err := store.Permissions().ReplaceRoles(ctx, record, []uuid.UUID{roleID}); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach role to permission")
	}
	if err := store.Permissions().ReplacePages(ctx, record, []uuid.UUID{pageID}); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to attach page to permission")
	}

	dto := toPermissionDTO(record)
	dto.UserIDs = []uuid.UUID{userID}
	dto.RoleIDs = []uuid.UUID{roleID}
	dto.PageIDs = []uuid.UUID{pageID}
	return &dto, nil
}

// Get returns one permission record
func (s *PermissionService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*PermissionDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	record, err := store.Permissions().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPermissionDTO(record)
	return &dto, nil
}

// List returns permission records matching the filter
func (s *PermissionService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]PermissionDTO, ListMeta, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	records, total, err := store.Permissions().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]PermissionDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toPermissionDTO(record))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}

// Delete removes a permission record and its associations
func (s *PermissionService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return err
	}
	if err := store.Permissions().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Permission record deleted",
		zap.String("tenant", tenantDomain),
		zap.String("permission_id", id.String()))
	return nil
}
