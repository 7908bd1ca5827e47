package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// RoleName is optional; empty defaults to the customer role
	RoleName string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to callers
type UserInfo struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         string
	Capabilities []string
	Status       string
	CreatedAt    time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	TokenJTI     string
	RemainingTTL time.Duration
}

// UpdateUserInput contains the fields a user update may change. Nil fields
// are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	RoleName *string
	Status   *string
}

// UserListFilter contains filter options for listing users
type UserListFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}
