package identity

import (
	"context"
	"testing"
	"time"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestPermissionService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin bypasses stored records", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Superadmin", identity.RoleTypeSuperadmin)
		user := seedUser(t, store, "Root", "root@test", role)
		seedPage(t, store, "Users", "/users")

		for _, action := range []identity.Action{identity.ActionCreate, identity.ActionEdit, identity.ActionView, identity.ActionDelete} {
			allowed, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: action})
			require.NoError(t, err)
			assert.True(t, allowed, "action %s", action)
		}
	})

	t.Run("no matching record denies without error", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		seedPage(t, store, "Users", "/users")

		allowed, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: identity.ActionView})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("granted record allows only its actions", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Users", "/users")

		_, err := svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{user.ID},
			RoleIDs: []uuid.UUID{role.ID},
			PageIDs: []uuid.UUID{page.ID},
			View:    boolPtr(true),
		})
		require.NoError(t, err)

		allowed, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: identity.ActionView})
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: identity.ActionDelete})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unknown page path denies", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)

		allowed, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/nowhere", Action: identity.ActionView})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("inactive page denies", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Users", "/users")

		_, err := svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{user.ID},
			RoleIDs: []uuid.UUID{role.ID},
			PageIDs: []uuid.UUID{page.ID},
			View:    boolPtr(true),
		})
		require.NoError(t, err)

		page.Deactivate()
		require.NoError(t, store.Pages().Update(ctx, page))

		allowed, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: identity.ActionView})
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("oldest matching record wins", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Users", "/users")

		older := identity.NewPermission(false, false, false, false)
		older.CreatedAt = time.Now().Add(-time.Hour)
		require.NoError(t, store.Permissions().Create(ctx, older))
		require.NoError(t, store.Permissions().ReplaceUsers(ctx, older, []uuid.UUID{user.ID}))
		require.NoError(t, store.Permissions().ReplacePages(ctx, older, []uuid.UUID{page.ID}))

		newer := identity.NewPermission(true, true, true, true)
		require.NoError(t, store.Permissions().Create(ctx, newer))
		require.NoError(t, store.Permissions().ReplaceUsers(ctx, newer, []uuid.UUID{user.ID}))
		require.NoError(t, store.Permissions().ReplacePages(ctx, newer, []uuid.UUID{page.ID}))

		allowed, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: identity.ActionView})
		require.NoError(t, err)
		assert.False(t, allowed, "the older record's denial must take precedence")
	})

	t.Run("unknown action is an error", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())
		user := seedUser(t, store, "Eve", "eve@test", nil)

		_, err := svc.Check(ctx, testTenant, CheckInput{UserID: user.ID, PagePath: "/users", Action: "own"})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})

	t.Run("unknown user is an error", func(t *testing.T) {
		stores, _ := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		_, err := svc.Check(ctx, testTenant, CheckInput{UserID: uuid.New(), PagePath: "/users", Action: identity.ActionView})
		require.Error(t, err)
	})
}

func TestPermissionService_Grant(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one record per triple", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		u1 := seedUser(t, store, "A", "a@test", role)
		u2 := seedUser(t, store, "B", "b@test", role)
		p1 := seedPage(t, store, "Users", "/users")
		p2 := seedPage(t, store, "Roles", "/roles")

		records, err := svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{u1.ID, u2.ID},
			RoleIDs: []uuid.UUID{role.ID},
			PageIDs: []uuid.UUID{p1.ID, p2.ID},
			View:    boolPtr(true),
		})
		require.NoError(t, err)
		assert.Len(t, records, 4)
	})

	t.Run("upsert preserves capabilities the input leaves unset", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Users", "/users")

		grant := func(patch GrantInput) []PermissionDTO {
			patch.UserIDs = []uuid.UUID{user.ID}
			patch.RoleIDs = []uuid.UUID{role.ID}
			patch.PageIDs = []uuid.UUID{page.ID}
			records, err := svc.Grant(ctx, testTenant, patch)
			require.NoError(t, err)
			return records
		}

		grant(GrantInput{View: boolPtr(true)})
		records := grant(GrantInput{Edit: boolPtr(true)})

		require.Len(t, records, 1)
		assert.True(t, records[0].CanView, "earlier view grant must survive the edit-only patch")
		assert.True(t, records[0].CanEdit)
		assert.False(t, records[0].CanCreate)

		// Still a single record for the triple.
		existing, err := store.Permissions().FindForUserRolePage(ctx, user.ID, role.ID, page.ID)
		require.NoError(t, err)
		assert.Equal(t, records[0].ID, existing.ID)
	})

	t.Run("collapses repeated ids to one grant", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Users", "/users")

		records, err := svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{user.ID, user.ID},
			RoleIDs: []uuid.UUID{role.ID},
			PageIDs: []uuid.UUID{page.ID, page.ID},
			View:    boolPtr(true),
		})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("rejects unknown members", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Employee", identity.RoleTypeEmployee)
		user := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Users", "/users")

		_, err := svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{uuid.New()},
			RoleIDs: []uuid.UUID{role.ID},
			PageIDs: []uuid.UUID{page.ID},
		})
		assert.True(t, shared.IsDomainError(err, "USER_NOT_FOUND"))

		_, err = svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{user.ID},
			RoleIDs: []uuid.UUID{uuid.New()},
			PageIDs: []uuid.UUID{page.ID},
		})
		assert.True(t, shared.IsDomainError(err, "ROLE_NOT_FOUND"))

		_, err = svc.Grant(ctx, testTenant, GrantInput{
			UserIDs: []uuid.UUID{user.ID},
			RoleIDs: []uuid.UUID{role.ID},
			PageIDs: []uuid.UUID{uuid.New()},
		})
		assert.True(t, shared.IsDomainError(err, "PAGE_NOT_FOUND"))
	})

	t.Run("requires all three sets", func(t *testing.T) {
		stores, _ := newTestStores(t)
		svc := NewPermissionService(stores, testLogger())

		_, err := svc.Grant(ctx, testTenant, GrantInput{})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}
