package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/auth"
	"github.com/garagehub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBlacklist is an in-memory TokenBlacklist for tests
type memBlacklist struct {
	mu          sync.Mutex
	jtis        map[string]bool
	invalidated map[string]time.Time
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{jtis: make(map[string]bool), invalidated: make(map[string]time.Time)}
}

func (b *memBlacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = true
	return nil
}

func (b *memBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.jtis[jti], nil
}

func (b *memBlacklist) InvalidateUserTokens(ctx context.Context, tenantDomain, userID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidated[tenantDomain+":"+userID] = time.Now()
	return nil
}

func (b *memBlacklist) IsUserTokenInvalidated(ctx context.Context, tenantDomain, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff, ok := b.invalidated[tenantDomain+":"+userID]
	return ok && issuedAt.Before(cutoff), nil
}

func newAuthService(t *testing.T) (*AuthService, identity.Store, *memBlacklist) {
	t.Helper()
	stores, store := newTestStores(t)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
	})
	blacklist := newMemBlacklist()
	svc := NewAuthService(stores, jwtService, auth.NewPasswordHasher(), blacklist, testLogger())
	return svc, store, blacklist
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user", func(t *testing.T) {
		svc, store, _ := newAuthService(t)

		user, err := svc.Register(ctx, testTenant, RegisterInput{
			Name:     "Alice",
			Email:    "Alice@Test.Example",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@test.example", user.Email)

		found, err := store.Users().FindByEmail(ctx, "alice@test.example")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, err := svc.Register(ctx, testTenant, RegisterInput{Name: "A", Email: "a@test", Password: "short"})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, store, _ := newAuthService(t)
		seedUser(t, store, "Alice", "alice@test", nil)

		_, err := svc.Register(ctx, testTenant, RegisterInput{Name: "A", Email: "alice@test", Password: "password123"})
		assert.True(t, shared.IsDomainError(err, "EMAIL_EXISTS"))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		roleID := shared.NewBaseEntity().ID

		_, err := svc.Register(ctx, testTenant, RegisterInput{
			Name: "A", Email: "a@test", Password: "password123", RoleID: &roleID,
		})
		assert.True(t, shared.IsDomainError(err, "ROLE_NOT_FOUND"))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *AuthService, email, password string) {
		t.Helper()
		_, err := svc.Register(ctx, testTenant, RegisterInput{Name: "Alice", Email: email, Password: password})
		require.NoError(t, err)
	}

	t.Run("returns a token pair for valid credentials", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		register(t, svc, "alice@test", "password123")

		result, err := svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "alice@test", result.User.Email)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		register(t, svc, "alice@test", "password123")

		_, err := svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "wrong-password"})
		assert.True(t, shared.IsDomainError(err, "INVALID_CREDENTIALS"))
	})

	t.Run("rejects unknown email with the same error", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, err := svc.Login(ctx, testTenant, LoginInput{Email: "nobody@test", Password: "password123"})
		assert.True(t, shared.IsDomainError(err, "INVALID_CREDENTIALS"))
	})

	t.Run("rejects inactive account", func(t *testing.T) {
		svc, store, _ := newAuthService(t)
		register(t, svc, "alice@test", "password123")

		user, err := store.Users().FindByEmail(ctx, "alice@test")
		require.NoError(t, err)
		user.Deactivate()
		require.NoError(t, store.Users().Update(ctx, user))

		_, err = svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "password123"})
		assert.True(t, shared.IsDomainError(err, "ACCOUNT_INACTIVE"))
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, svc *AuthService) *LoginResult {
		t.Helper()
		_, err := svc.Register(ctx, testTenant, RegisterInput{Name: "Alice", Email: "alice@test", Password: "password123"})
		require.NoError(t, err)
		result, err := svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "password123"})
		require.NoError(t, err)
		return result
	}

	t.Run("accepts a fresh token", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		result := login(t, svc)

		claims, user, err := svc.Authenticate(ctx, result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, testTenant, claims.TenantDomain)
		assert.Equal(t, result.User.ID, user.ID)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, _, err := svc.Authenticate(ctx, "not-a-token")
		assert.True(t, shared.IsDomainError(err, "UNAUTHORIZED"))
	})

	t.Run("rejects a logged-out token", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		result := login(t, svc)

		require.NoError(t, svc.Logout(ctx, result.AccessToken))

		_, _, err := svc.Authenticate(ctx, result.AccessToken)
		assert.True(t, shared.IsDomainError(err, "UNAUTHORIZED"))
	})

	t.Run("rejects tokens issued before a password change", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		result := login(t, svc)

		// JWT issued-at has second resolution; make sure the change lands
		// strictly after it.
		time.Sleep(1100 * time.Millisecond)
		err := svc.ChangePassword(ctx, testTenant, ChangePasswordInput{
			UserID:      result.User.ID,
			OldPassword: "password123",
			NewPassword: "newpassword456",
		})
		require.NoError(t, err)

		_, _, err = svc.Authenticate(ctx, result.AccessToken)
		assert.True(t, shared.IsDomainError(err, "UNAUTHORIZED"))

		// The new credentials work.
		_, err = svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "newpassword456"})
		require.NoError(t, err)
	})

	t.Run("rejects tokens of deleted users", func(t *testing.T) {
		svc, store, _ := newAuthService(t)
		result := login(t, svc)

		require.NoError(t, store.Users().Delete(ctx, result.User.ID))

		_, _, err := svc.Authenticate(ctx, result.AccessToken)
		assert.True(t, shared.IsDomainError(err, "UNAUTHORIZED"))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects wrong old password", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		user, err := svc.Register(ctx, testTenant, RegisterInput{Name: "Alice", Email: "alice@test", Password: "password123"})
		require.NoError(t, err)

		err = svc.ChangePassword(ctx, testTenant, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong",
			NewPassword: "newpassword456",
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_CREDENTIALS"))
	})

	t.Run("rejects short new password", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		user, err := svc.Register(ctx, testTenant, RegisterInput{Name: "Alice", Email: "alice@test", Password: "password123"})
		require.NoError(t, err)

		err = svc.ChangePassword(ctx, testTenant, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "password123",
			NewPassword: "short",
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a fresh pair", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Register(ctx, testTenant, RegisterInput{Name: "Alice", Email: "alice@test", Password: "password123"})
		require.NoError(t, err)
		result, err := svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "password123"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, result.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, result.User.ID, refreshed.User.ID)
	})

	t.Run("rejects an access token used as refresh token", func(t *testing.T) {
		svc, _, _ := newAuthService(t)
		_, err := svc.Register(ctx, testTenant, RegisterInput{Name: "Alice", Email: "alice@test", Password: "password123"})
		require.NoError(t, err)
		result, err := svc.Login(ctx, testTenant, LoginInput{Email: "alice@test", Password: "password123"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, result.AccessToken)
		assert.True(t, shared.IsDomainError(err, "UNAUTHORIZED"))
	})
}
