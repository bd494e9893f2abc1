package identity

import (
	"context"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDWithRole(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, int64, error)
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]*User, error)
	CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AttachPermission(ctx context.Context, userID, permissionID uuid.UUID) error
}

// RoleRepository defines persistence operations for roles
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByIDWithPermissions(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Role, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CountReferencingPage(ctx context.Context, pageID uuid.UUID) (int64, error)
	SavePermissionEntries(ctx context.Context, role *Role) error
}

// PageRepository defines persistence operations for pages
type PageRepository interface {
	Create(ctx context.Context, page *Page) error
	Update(ctx context.Context, page *Page) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Page, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Page, error)
	FindByPath(ctx context.Context, path string) (*Page, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Page, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByPath(ctx context.Context, path string) (bool, error)
}

// PermissionRepository defines persistence operations for permission records
type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	Update(ctx context.Context, permission *Permission) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Permission, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Permission, int64, error)

	// FindMatching returns permission records whose user set intersects
	// userIDs and whose page set intersects pageIDs, ordered by creation
	// time ascending.
	FindMatching(ctx context.Context, userIDs, pageIDs []uuid.UUID) ([]*Permission, error)

	// FindForUserRolePage returns the record attached to exactly this
	// (user, role, page) triple, or shared.ErrNotFound.
	FindForUserRolePage(ctx context.Context, userID, roleID, pageID uuid.UUID) (*Permission, error)

	ReplaceUsers(ctx context.Context, permission *Permission, userIDs []uuid.UUID) error
	ReplaceRoles(ctx context.Context, permission *Permission, roleIDs []uuid.UUID) error
	ReplacePages(ctx context.Context, permission *Permission, pageIDs []uuid.UUID) error
}

// Store bundles the identity repositories for one tenant connection
type Store interface {
	Users() UserRepository
	Roles() RoleRepository
	Pages() PageRepository
	Permissions() PermissionRepository

	// Transaction runs fn against a store bound to a database transaction;
	// any error aborts the whole set of writes.
	Transaction(ctx context.Context, fn func(Store) error) error
}

// StoreResolver resolves the identity store for a tenant domain
type StoreResolver interface {
	IdentityStore(ctx context.Context, tenantDomain string) (Store, error)
}
