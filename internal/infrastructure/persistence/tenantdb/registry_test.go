package tenantdb

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqliteOpener opens an isolated in-memory database per call, which mirrors
// the one-database-per-tenant layout without a postgres server.
func sqliteOpener() Opener {
	return func(ctx context.Context, dbName string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("caches one connection per domain", func(t *testing.T) {
		reg := NewRegistry(sqliteOpener(), "garage", nil)

		first, err := reg.Resolve(ctx, "alpha")
		require.NoError(t, err)
		second, err := reg.Resolve(ctx, "alpha")
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("normalizes the domain before lookup", func(t *testing.T) {
		reg := NewRegistry(sqliteOpener(), "garage", nil)

		first, err := reg.Resolve(ctx, "alpha")
		require.NoError(t, err)
		second, err := reg.Resolve(ctx, "  ALPHA ")
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("isolates tenant data", func(t *testing.T) {
		reg := NewRegistry(sqliteOpener(), "garage", nil)

		alphaDB, err := reg.Resolve(ctx, "alpha")
		require.NoError(t, err)
		betaDB, err := reg.Resolve(ctx, "beta")
		require.NoError(t, err)
		require.NotSame(t, alphaDB, betaDB)

		user, err := identity.NewUser("Alice", "alice@alpha.test", "hash")
		require.NoError(t, err)
		require.NoError(t, alphaDB.Create(user).Error)

		var alphaCount, betaCount int64
		require.NoError(t, alphaDB.Model(&identity.User{}).Count(&alphaCount).Error)
		require.NoError(t, betaDB.Model(&identity.User{}).Count(&betaCount).Error)

		assert.Equal(t, int64(1), alphaCount)
		assert.Equal(t, int64(0), betaCount)
	})

	t.Run("rejects empty domain", func(t *testing.T) {
		reg := NewRegistry(sqliteOpener(), "garage", nil)

		_, err := reg.Resolve(ctx, "  ")
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "TENANT_REQUIRED"))
	})

	t.Run("rejects malformed domain", func(t *testing.T) {
		reg := NewRegistry(sqliteOpener(), "garage", nil)

		for _, domain := range []string{"alpha motors", "alpha_motors", "-alpha", "alpha-", "al.pha"} {
			_, err := reg.Resolve(ctx, domain)
			require.Error(t, err, "domain %q", domain)
			assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"), "domain %q", domain)
		}
	})

	t.Run("does not cache failed connections", func(t *testing.T) {
		var fail atomic.Bool
		fail.Store(true)
		inner := sqliteOpener()
		opener := func(ctx context.Context, dbName string) (*gorm.DB, error) {
			if fail.Load() {
				return nil, errors.New("server down")
			}
			return inner(ctx, dbName)
		}
		reg := NewRegistry(opener, "garage", nil)

		_, err := reg.Resolve(ctx, "alpha")
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "TENANT_CONNECTION"))

		fail.Store(false)
		db, err := reg.Resolve(ctx, "alpha")
		require.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("concurrent first access opens one connection", func(t *testing.T) {
		var opens atomic.Int32
		inner := sqliteOpener()
		opener := func(ctx context.Context, dbName string) (*gorm.DB, error) {
			opens.Add(1)
			time.Sleep(10 * time.Millisecond)
			return inner(ctx, dbName)
		}
		reg := NewRegistry(opener, "garage", nil)

		var wg sync.WaitGroup
		results := make([]*gorm.DB, 10)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				db, err := reg.Resolve(ctx, "alpha")
				require.NoError(t, err)
				results[i] = db
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), opens.Load())
		for _, db := range results {
			assert.Same(t, results[0], db)
		}
	})
}

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	configurePool(sqlDB, config.DatabaseConfig{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 10,
	})

	// Lifetime limits are not observable through Stats; the open-connection
	// cap confirms the settings reached the pool.
	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)
}

func TestRegistry_DatabaseName(t *testing.T) {
	reg := NewRegistry(sqliteOpener(), "garage", nil)

	assert.Equal(t, "garage_alphamotors", reg.DatabaseName("alphamotors"))
	assert.Equal(t, "garage_alpha_motors", reg.DatabaseName("alpha-motors"))
}

func TestRegistry_CloseAll(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(sqliteOpener(), "garage", nil)

	_, err := reg.Resolve(ctx, "alpha")
	require.NoError(t, err)
	_, err = reg.Resolve(ctx, "beta")
	require.NoError(t, err)
	assert.Len(t, reg.Domains(), 2)

	require.NoError(t, reg.CloseAll())
	assert.Empty(t, reg.Domains())
}

func TestNormalizeDomain(t *testing.T) {
	assert.Equal(t, "alpha", NormalizeDomain(" Alpha "))
	assert.Equal(t, "", NormalizeDomain("   "))
}

func TestValidDomain(t *testing.T) {
	assert.True(t, ValidDomain("alpha"))
	assert.True(t, ValidDomain("alpha-motors"))
	assert.True(t, ValidDomain("a1"))
	assert.False(t, ValidDomain(""))
	assert.False(t, ValidDomain("-alpha"))
	assert.False(t, ValidDomain("alpha-"))
	assert.False(t, ValidDomain("alpha motors"))
}
