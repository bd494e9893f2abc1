package identity

import (
	"context"
	"testing"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/infrastructure/persistence"
	"github.com/garagehub/backend/internal/infrastructure/persistence/tenantdb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testTenant = "alpha"

// singleTenantStores serves every tenant domain from one in-memory database
type singleTenantStores struct {
	db *gorm.DB
}

func (s singleTenantStores) IdentityStore(ctx context.Context, tenantDomain string) (identity.Store, error) {
	return persistence.NewIdentityStore(s.db), nil
}

func newTestStores(t *testing.T) (singleTenantStores, identity.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, tenantdb.EnsureSchema(db))
	return singleTenantStores{db: db}, persistence.NewIdentityStore(db)
}

func seedRole(t *testing.T, store identity.Store, name string, roleType identity.RoleType) *identity.Role {
	t.Helper()
	role, err := identity.NewRole(name, roleType)
	require.NoError(t, err)
	require.NoError(t, store.Roles().Create(context.Background(), role))
	return role
}

func seedUser(t *testing.T, store identity.Store, name, email string, role *identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(name, email, "$2a$10$fakehashfakehashfakehash")
	require.NoError(t, err)
	if role != nil {
		user.AssignRole(role.ID)
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func seedPage(t *testing.T, store identity.Store, name, path string) *identity.Page {
	t.Helper()
	page, err := identity.NewPage(name, path, "test")
	require.NoError(t, err)
	require.NoError(t, store.Pages().Create(context.Background(), page))
	return page
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
