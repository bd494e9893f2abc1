package identity

import (
	"context"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management inside one tenant database
type UserService struct {
	stores identity.StoreResolver
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(stores identity.StoreResolver, hasher *auth.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{stores: stores, hasher: hasher, logger: logger}
}

// CreateUserInput contains input for creating a user
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleID   *uuid.UUID
}

// UpdateUserInput contains input for updating a user; nil fields are kept
type UpdateUserInput struct {
	ID     uuid.UUID
	Name   *string
	Email  *string
	Status *string
	RoleID *uuid.UUID
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, tenantDomain string, input CreateUserInput) (*UserDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
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

	if len(input.Password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
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

	s.logger.Info("User created",
		zap.String("tenant", tenantDomain),
		zap.String("user_id", user.ID.String()))

	dto := toUserDTO(user)
	return &dto, nil
}

// Update updates a user's mutable fields
func (s *UserService) Update(ctx context.Context, tenantDomain string, input UpdateUserInput) (*UserDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	user, err := store.Users().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "User name cannot be empty")
		}
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		exists, err := store.Users().ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
		}
		if exists {
			return nil, shared.NewDomainError("EMAIL_EXISTS", "A user with this email already exists")
		}
		user.Email = *input.Email
	}
	if input.Status != nil {
		switch identity.UserStatus(*input.Status) {
		case identity.UserStatusActive:
			user.Activate()
		case identity.UserStatusInactive:
			user.Deactivate()
		default:
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "unknown user status %q", *input.Status)
		}
	}
	if input.RoleID != nil {
		roleExists, err := store.Roles().ExistsByID(ctx, *input.RoleID)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate role")
		}
		if !roleExists {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Role not found")
		}
		user.AssignRole(*input.RoleID)
	}
	user.Touch()

	if err := store.Users().Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return err
	}
	if err := store.Users().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted",
		zap.String("tenant", tenantDomain),
		zap.String("user_id", id.String()))
	return nil
}

// Get returns one user with its role preloaded
func (s *UserService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*UserDTO, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	user, err := store.Users().FindByIDWithRole(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]UserDTO, ListMeta, error) {
	store, err := s.stores.IdentityStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	users, total, err := store.Users().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
