package identity

import (
	"context"
	"time"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication against one tenant database at a time.
// The tenant domain travels with every call; the store resolver maps it to
// the right connection.
type AuthService struct {
	stores     identity.StoreResolver
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	stores identity.StoreResolver,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		stores:     stores,
		jwtService: jwtService,
		hasher:     hasher,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// RegisterInput contains input for registering a user
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleID   *uuid.UUID
}

// LoginInput contains credentials for login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains tokens and the authenticated user
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserDTO   `json:"user"`
}

// Register creates a new user account in the tenant database
func (s *AuthService) Register(ctx context.Context, tenantDomain string, input RegisterInput) (*UserDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	if len(input.Password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}

	exists, err := store.Users().ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "A user with this email already exists")
	}

	if input.RoleID != nil {
		roleExists, err := store.Roles().ExistsByID(ctx, *input.RoleID)
		if err != nil {
			s.logger.Error("Failed to check role existence", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate role")
		}
		if !roleExists {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process password")
	}

	user, err := identity.NewUser(input.Name, input.Email, hash)
	if err != nil {
		return nil, err
	}
	if input.RoleID != nil {
		user.AssignRole(*input.RoleID)
	}

	if err := store.Users().Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User registered",
		zap.String("tenant", tenantDomain),
		zap.String("user_id", user.ID.String()))

	dto := toUserDTO(user)
	return &dto, nil
}

// Login authenticates credentials and returns a token pair
func (s *AuthService) Login(ctx context.Context, tenantDomain string, input LoginInput) (*LoginResult, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	user, err := store.Users().FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("Login failed: user not found",
			zap.String("tenant", tenantDomain),
			zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for inactive account",
			zap.String("tenant", tenantDomain),
			zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		s.logger.Warn("Login failed: wrong password",
			zap.String("tenant", tenantDomain),
			zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	roleName := ""
	if user.RoleID != nil {
		role, err := store.Roles().FindByID(ctx, *user.RoleID)
		if err == nil {
			roleName = role.Name
			user.Role = role
		}
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantDomain: tenantDomain,
		UserID:       user.ID,
		Username:     user.Name,
		Role:         roleName,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.String("tenant", tenantDomain),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserDTO(user),
	}, nil
}

// Refresh validates a refresh token and issues a fresh pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	store, err := s.stores.IdentityStore(ctx, claims.TenantDomain)
	if err != nil {
		return nil, err
	}

	user, err := store.Users().FindByIDWithRole(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "User no longer exists")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}
	if user.TokenIssuedBeforePasswordChange(claims.GetIssuedAtTime()) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Token issued before last password change")
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantDomain: claims.TenantDomain,
		UserID:       user.ID,
		Username:     user.Name,
		Role:         roleName,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserDTO(user),
	}, nil
}

// Authenticate validates an access token end-to-end: signature, revocation,
// user existence and password-change staleness. Used by the auth middleware.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, *identity.User, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, nil, shared.NewDomainError("UNAUTHORIZED", "Invalid or expired token")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, shared.NewDomainError("UNAUTHORIZED", "Invalid token claims")
	}

	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, nil, err
	}

	store, err := s.stores.IdentityStore(ctx, claims.TenantDomain)
	if err != nil {
		return nil, nil, err
	}

	user, err := store.Users().FindByIDWithRole(ctx, userID)
	if err != nil {
		return nil, nil, shared.NewDomainError("UNAUTHORIZED", "User no longer exists")
	}
	if !user.IsActive() {
		return nil, nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}
	if user.TokenIssuedBeforePasswordChange(claims.GetIssuedAtTime()) {
		return nil, nil, shared.NewDomainError("UNAUTHORIZED", "Token issued before last password change")
	}

	return claims, user, nil
}

func (s *AuthService) checkRevocation(ctx context.Context, claims *auth.Claims) error {
	if claims.ID != "" {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("Failed to check token blacklist", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
		}
		if revoked {
			return shared.NewDomainError("UNAUTHORIZED", "Token has been revoked")
		}
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.TenantDomain, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check user token invalidation", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
	}
	if invalidated {
		return shared.NewDomainError("UNAUTHORIZED", "Token has been revoked")
	}
	return nil
}

// Logout blacklists the presented access token until its natural expiry
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Already unusable; nothing to revoke.
		return nil
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("User logged out",
		zap.String("tenant", claims.TenantDomain),
		zap.String("user_id", claims.UserID))
	return nil
}

// ChangePasswordInput contains input for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// ChangePassword verifies the old password, stores the new hash and
// invalidates every token issued before the change.
func (s *AuthService) ChangePassword(ctx context.Context, tenantDomain string, input ChangePasswordInput) error {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	user, err := store.Users().FindByID(ctx, input.UserID)
	if err != nil {
		return shared.ErrNotFound
	}

	if !s.hasher.Verify(user.PasswordHash, input.OldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if len(input.NewPassword) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to process password")
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}
	if err := store.Users().Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	if err := s.blacklist.InvalidateUserTokens(ctx, tenantDomain, user.ID.String()); err != nil {
		// PasswordChangedAt still rejects stale tokens on validation.
		s.logger.Warn("Failed to invalidate user tokens after password change", zap.Error(err))
	}

	s.logger.Info("Password changed",
		zap.String("tenant", tenantDomain),
		zap.String("user_id", user.ID.String()))
	return nil
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, tenantDomain string, userID uuid.UUID) (*UserDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	user, err := store.Users().FindByIDWithRole(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	dto := toUserDTO(user)
	return &dto, nil
}
