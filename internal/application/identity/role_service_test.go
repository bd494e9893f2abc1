package identity

import (
	"context"
	"testing"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleService_Create(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewRoleService(stores, testLogger())

	role, err := svc.Create(ctx, testTenant, CreateRoleInput{Name: "Mechanic", Type: "employee"})
	require.NoError(t, err)
	assert.Equal(t, "Mechanic", role.Name)
	assert.Equal(t, "employee", role.Type)

	_, err = svc.Create(ctx, testTenant, CreateRoleInput{Name: "Mechanic", Type: "employee"})
	assert.True(t, shared.IsDomainError(err, "ROLE_EXISTS"))

	_, err = svc.Create(ctx, testTenant, CreateRoleInput{Name: "Odd", Type: "wizard"})
	assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
}

func TestRoleService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while users hold the role", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewRoleService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)
		seedUser(t, store, "Eve", "eve@test", role)

		err := svc.Delete(ctx, testTenant, role.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "ROLE_IN_USE"))
	})

	t.Run("deletes an unused role", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewRoleService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)
		require.NoError(t, svc.Delete(ctx, testTenant, role.ID))

		_, err := store.Roles().FindByID(ctx, role.ID)
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
	})
}

func TestRoleService_UpdatePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the role's page grants", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewRoleService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)
		p1 := seedPage(t, store, "Products", "/products")
		p2 := seedPage(t, store, "Stock", "/stock")

		updated, err := svc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: p1.ID, CanView: true},
			{PageID: p2.ID, CanView: true, CanEdit: true},
		})
		require.NoError(t, err)
		require.Len(t, updated.Permissions, 2)

		// A second update replaces, not appends.
		updated, err = svc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: p1.ID, CanView: true, CanCreate: true},
		})
		require.NoError(t, err)
		require.Len(t, updated.Permissions, 1)
		assert.Equal(t, p1.ID, updated.Permissions[0].PageID)
		assert.True(t, updated.Permissions[0].CanCreate)
	})

	t.Run("writes grants through to role members", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewRoleService(stores, testLogger())
		permSvc := NewPermissionService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)
		member := seedUser(t, store, "Eve", "eve@test", role)
		page := seedPage(t, store, "Products", "/products")

		_, err := svc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: page.ID, CanView: true},
		})
		require.NoError(t, err)

		allowed, err := permSvc.Check(ctx, testTenant, CheckInput{
			UserID: member.ID, PagePath: "/products", Action: identity.ActionView,
		})
		require.NoError(t, err)
		assert.True(t, allowed, "member can use the granted capability")

		allowed, err = permSvc.Check(ctx, testTenant, CheckInput{
			UserID: member.ID, PagePath: "/products", Action: identity.ActionDelete,
		})
		require.NoError(t, err)
		assert.False(t, allowed, "ungranted capabilities stay denied")

		// A later role update overrides the member's record.
		_, err = svc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: page.ID, CanView: true, CanDelete: true},
		})
		require.NoError(t, err)

		allowed, err = permSvc.Check(ctx, testTenant, CheckInput{
			UserID: member.ID, PagePath: "/products", Action: identity.ActionDelete,
		})
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("rejects unknown pages", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewRoleService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)

		_, err := svc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: uuid.New(), CanView: true},
		})
		assert.True(t, shared.IsDomainError(err, "PAGE_NOT_FOUND"))
	})

	t.Run("rejects duplicate pages", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewRoleService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)
		page := seedPage(t, store, "Products", "/products")

		_, err := svc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: page.ID, CanView: true},
			{PageID: page.ID, CanEdit: true},
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}

func TestPageService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while roles reference the page", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPageService(stores, testLogger())
		roleSvc := NewRoleService(stores, testLogger())

		role := seedRole(t, store, "Mechanic", identity.RoleTypeEmployee)
		page := seedPage(t, store, "Products", "/products")

		_, err := roleSvc.UpdatePermissions(ctx, testTenant, role.ID, []PageGrantInput{
			{PageID: page.ID, CanView: true},
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, testTenant, page.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "PAGE_IN_USE"))
	})

	t.Run("deletes an unreferenced page", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewPageService(stores, testLogger())

		page := seedPage(t, store, "Products", "/products")
		require.NoError(t, svc.Delete(ctx, testTenant, page.ID))
	})
}

func TestPageService_Create(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewPageService(stores, testLogger())

	_, err := svc.Create(ctx, testTenant, CreatePageInput{Name: "Products", Path: "/products", Category: "inventory"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, testTenant, CreatePageInput{Name: "Products", Path: "/other"})
	assert.True(t, shared.IsDomainError(err, "PAGE_EXISTS"), "duplicate name")

	_, err = svc.Create(ctx, testTenant, CreatePageInput{Name: "Other", Path: "/products"})
	assert.True(t, shared.IsDomainError(err, "PAGE_EXISTS"), "duplicate path")
}

func TestUserService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects duplicate email", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewUserService(stores, auth.NewPasswordHasher(), testLogger())
		seedUser(t, store, "Alice", "alice@test", nil)

		_, err := svc.Create(ctx, testTenant, CreateUserInput{Name: "Bob", Email: "alice@test", Password: "password123"})
		assert.True(t, shared.IsDomainError(err, "EMAIL_EXISTS"))
	})

	t.Run("patch keeps omitted fields", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewUserService(stores, auth.NewPasswordHasher(), testLogger())
		user := seedUser(t, store, "Alice", "alice@test", nil)

		name := "Alice Cooper"
		updated, err := svc.Update(ctx, testTenant, UpdateUserInput{ID: user.ID, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alice Cooper", updated.Name)
		assert.Equal(t, "alice@test", updated.Email)
		assert.Equal(t, "active", updated.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewUserService(stores, auth.NewPasswordHasher(), testLogger())
		user := seedUser(t, store, "Alice", "alice@test", nil)

		status := "banned"
		_, err := svc.Update(ctx, testTenant, UpdateUserInput{ID: user.ID, Status: &status})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}
