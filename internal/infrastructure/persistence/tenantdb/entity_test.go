package tenantdb

import (
	"context"
	"testing"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(db))
	return db
}

func TestPrototype(t *testing.T) {
	t.Run("returns a fresh zero value per call", func(t *testing.T) {
		for _, entity := range Entities() {
			first, err := Prototype(entity)
			require.NoError(t, err, "entity %s", entity)
			second, err := Prototype(entity)
			require.NoError(t, err, "entity %s", entity)

			assert.IsType(t, first, second, "entity %s", entity)
			assert.NotSame(t, first, second, "entity %s", entity)
		}
	})

	t.Run("rejects an unknown entity", func(t *testing.T) {
		_, err := Prototype("Invoice")
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "UNKNOWN_ENTITY"))
	})
}

func TestModel(t *testing.T) {
	ctx := context.Background()
	db := newMigratedDB(t)

	t.Run("scopes queries to the entity's table", func(t *testing.T) {
		user, err := identity.NewUser("Alice", "alice@alpha.test", "hash")
		require.NoError(t, err)
		require.NoError(t, db.WithContext(ctx).Create(user).Error)

		query, err := Model(db, EntityUser)
		require.NoError(t, err)

		var count int64
		require.NoError(t, query.Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("repeated lookups resolve the same schema", func(t *testing.T) {
		first, err := Model(db, EntityWarehouse)
		require.NoError(t, err)
		second, err := Model(db, EntityWarehouse)
		require.NoError(t, err)

		var firstCount, secondCount int64
		require.NoError(t, first.Count(&firstCount).Error)
		require.NoError(t, second.Count(&secondCount).Error)
		assert.Equal(t, firstCount, secondCount)
	})

	t.Run("rejects an unknown entity", func(t *testing.T) {
		_, err := Model(db, "Invoice")
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "UNKNOWN_ENTITY"))
	})
}

func TestTableCounts(t *testing.T) {
	ctx := context.Background()
	db := newMigratedDB(t)

	counts, err := TableCounts(ctx, db)
	require.NoError(t, err)
	require.Len(t, counts, len(Entities()))
	for entity, n := range counts {
		assert.Zero(t, n, "entity %s", entity)
	}

	user, err := identity.NewUser("Alice", "alice@alpha.test", "hash")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)

	counts, err = TableCounts(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[EntityUser])
}
