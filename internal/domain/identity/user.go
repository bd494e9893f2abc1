package identity

import (
	"strings"
	"time"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserStatus represents the activation state of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents an account inside one tenant database. PasswordChangedAt
// is compared against JWT issued-at to reject tokens minted before the last
// password change.
type User struct {
	shared.BaseEntity
	Name              string     `gorm:"size:200;not null" json:"name"`
	Email             string     `gorm:"size:200;not null;uniqueIndex" json:"email"`
	PasswordHash      string     `gorm:"size:200;not null" json:"-"`
	Status            UserStatus `gorm:"size:20;not null;default:active" json:"status"`
	RoleID            *uuid.UUID `gorm:"type:uuid;index" json:"role_id"`
	Role              *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	PasswordChangedAt time.Time  `json:"password_changed_at"`

	// Direct permission grants, in addition to grants via Role
	Permissions []Permission `gorm:"many2many:user_permissions" json:"permissions,omitempty"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with the given password hash
func NewUser(name, email, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User password hash cannot be empty")
	}

	return &User{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		Status:            UserStatusActive,
		PasswordChangedAt: time.Now(),
	}, nil
}

// IsActive reports whether the user may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Activate marks the user account active
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.Touch()
}

// Deactivate marks the user account inactive
func (u *User) Deactivate() {
	u.Status = UserStatusInactive
	u.Touch()
}

// AssignRole sets the user's role
func (u *User) AssignRole(roleID uuid.UUID) {
	u.RoleID = &roleID
	u.Touch()
}

// ChangePassword replaces the password hash and advances the change
// timestamp, invalidating tokens issued earlier.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}
	u.PasswordHash = newHash
	u.PasswordChangedAt = time.Now()
	u.Touch()
	return nil
}

// TokenIssuedBeforePasswordChange reports whether a token issued at the
// given time predates the last password change.
func (u *User) TokenIssuedBeforePasswordChange(issuedAt time.Time) bool {
	// Truncate to seconds; JWT iat has second precision.
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
