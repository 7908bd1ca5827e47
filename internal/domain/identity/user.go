package identity

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tienda/backend/internal/domain/shared"
)

// UserStatus represents the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// User is a registered account. A user owns at most one active cart and any
// number of orders.
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	RoleID       uuid.UUID
	Status       UserStatus

	// Role is populated by the repository when requested
	Role *Role
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(name, email, password string, roleID uuid.UUID) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		RoleID:     roleID,
		Status:     UserStatusActive,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive
}

// Deactivate marks the account as deactivated
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.Touch()
}

// Activate marks the account as active
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.Touch()
}
