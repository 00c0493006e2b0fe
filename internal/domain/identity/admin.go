package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the dashboard permission level of an admin.
type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Can manage other admins
	RoleAdmin      Role = "admin"       // Can manage content only
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72

	// MaxLoginAttempts is the number of consecutive failures before the account is locked
	MaxLoginAttempts = 5
	// LockDuration is how long a locked account stays locked
	LockDuration = 15 * time.Minute
)

var bcryptCost = 12

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.\-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrPasswordMismatch   = shared.NewDomainError("PASSWORD_MISMATCH", "Konfirmasi password tidak sama")
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Username atau password salah")
	ErrAccountLocked      = shared.NewDomainError("ACCOUNT_LOCKED", "Akun terkunci sementara karena terlalu banyak percobaan login")
	ErrAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "Akun tidak aktif")
	ErrAdminNotFound      = shared.NewDomainError("ADMIN_NOT_FOUND", "Admin tidak ditemukan")
	ErrUsernameTaken      = shared.NewDomainError("USERNAME_ALREADY_EXISTS", "Username sudah digunakan")
	ErrEmailTaken         = shared.NewDomainError("EMAIL_ALREADY_EXISTS", "Email sudah digunakan")
	ErrLastSuperAdmin     = shared.NewDomainError("LAST_SUPER_ADMIN", "Super admin terakhir tidak dapat dihapus atau dinonaktifkan")
)

// Admin is a dashboard user.
type Admin struct {
	shared.BaseEntity
	Name           string `gorm:"type:varchar(100);not null"`
	Username       string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email          string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	Role           Role   `gorm:"type:varchar(20);not null"`
	IsActive       bool   `gorm:"not null"`
	LastLoginAt    *time.Time
	LastLoginIP    string `gorm:"type:varchar(45)"`
	FailedAttempts int    `gorm:"not null"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (Admin) TableName() string {
	return "admins"
}

// NewAdmin creates an active admin. password and confirmation must match.
func NewAdmin(name, username, email, password, confirmation string, role Role) (*Admin, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role tidak valid")
	}
	hash, err := hashNewPassword(password, confirmation)
	if err != nil {
		return nil, err
	}

	return &Admin{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         strings.TrimSpace(name),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// Update changes the profile fields.
func (a *Admin) Update(name, email string, role Role) error {
	if err := validateName(name); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role tidak valid")
	}

	a.Name = strings.TrimSpace(name)
	a.Email = email
	a.Role = role
	a.Touch()
	return nil
}

// SetActive activates or deactivates the account.
func (a *Admin) SetActive(active bool) {
	a.IsActive = active
	if active {
		a.FailedAttempts = 0
		a.LockedUntil = nil
	}
	a.Touch()
}

// ChangePassword verifies the current password before setting a new one.
func (a *Admin) ChangePassword(current, password, confirmation string) error {
	if !a.VerifyPassword(current) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password saat ini salah")
	}
	return a.ResetPassword(password, confirmation)
}

// ResetPassword sets a new password without checking the old one.
func (a *Admin) ResetPassword(password, confirmation string) error {
	hash, err := hashNewPassword(password, confirmation)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	a.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (a *Admin) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// RecordLoginSuccess records a successful login
func (a *Admin) RecordLoginSuccess(ip string) {
	now := time.Now()
	a.LastLoginAt = &now
	a.LastLoginIP = ip
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = now
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account got locked.
func (a *Admin) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	a.FailedAttempts++
	a.Touch()

	if a.FailedAttempts >= maxAttempts {
		until := time.Now().Add(lockDuration)
		a.LockedUntil = &until
		a.FailedAttempts = 0
		return true
	}
	return false
}

// IsLocked returns true while a lock is in effect
func (a *Admin) IsLocked() bool {
	return a.LockedUntil != nil && time.Now().Before(*a.LockedUntil)
}

// CanLogin returns nil if the admin may log in, or the reason why not.
func (a *Admin) CanLogin() error {
	if !a.IsActive {
		return ErrAccountInactive
	}
	if a.IsLocked() {
		return ErrAccountLocked
	}
	return nil
}

// IsSuperAdmin reports whether the admin can manage other admins.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// ValidatePasswordConfirmation checks the password rules and that both entries match.
func ValidatePasswordConfirmation(password, confirmation string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}

func hashNewPassword(password, confirmation string) (string, error) {
	if err := ValidatePasswordConfirmation(password, confirmation); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("PASSWORD_HASH_ERROR", "Gagal memproses password")
	}
	return string(hash), nil
}

// Validation functions

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Nama wajib diisi")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Nama maksimal 100 karakter")
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username wajib diisi")
	}
	if len(username) < 3 || len(username) > 50 {
		return shared.NewDomainError("INVALID_USERNAME", "Username harus 3 sampai 50 karakter")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username hanya boleh berisi huruf, angka, titik, garis bawah, dan tanda hubung")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password wajib diisi")
	}
	if len(password) < minPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password minimal 8 karakter")
	}
	if len(password) > maxPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password maksimal 72 karakter")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email maksimal 200 karakter")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Format email tidak valid")
	}
	return nil
}
