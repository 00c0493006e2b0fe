package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/infrastructure/auth"
)

// LoginInput contains the credentials of a login attempt
type LoginInput struct {
	Login     string // username or email
	Password  string
	IP        string
	UserAgent string
}

// TokenResult is the token pair returned by login and refresh
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResult is the outcome of a successful login
type LoginResult struct {
	TokenResult
	Admin AdminResponse `json:"admin"`
}

// LogoutInput identifies the tokens to revoke
type LogoutInput struct {
	AccessClaims *auth.Claims
	// RefreshToken is optional; when valid it is revoked too
	RefreshToken string
}

// ChangePasswordInput contains a password change request
type ChangePasswordInput struct {
	AdminID              uuid.UUID
	CurrentPassword      string
	NewPassword          string
	PasswordConfirmation string
}

// CreateAdminInput contains the fields of a new admin
type CreateAdminInput struct {
	Name                 string
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 string
}

// UpdateAdminInput contains the editable fields of an admin.
// The password is only changed when Password is non-empty.
type UpdateAdminInput struct {
	Name                 string
	Email                string
	Role                 string
	IsActive             *bool
	Password             string
	PasswordConfirmation string
}

// AdminListFilter narrows the admin list
type AdminListFilter struct {
	shared.ListQuery
	Role     string
	IsActive *bool
}

// AdminResponse is the API view of an admin. The password hash never leaves the service.
type AdminResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToAdminResponse converts an admin
func ToAdminResponse(a *identity.Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID,
		Name:        a.Name,
		Username:    a.Username,
		Email:       a.Email,
		Role:        string(a.Role),
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toTokenResult(p *auth.TokenPair) TokenResult {
	return TokenResult{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             p.TokenType,
	}
}
