package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	ErrTokenExpired    = shared.NewDomainError("TOKEN_EXPIRED", "Sesi telah berakhir, silakan login kembali")
	ErrTokenInvalid    = shared.NewDomainError("TOKEN_INVALID", "Token tidak valid")
	ErrTokenRevoked    = shared.NewDomainError("TOKEN_REVOKED", "Token sudah tidak berlaku")
	ErrTokenMaxRefresh = shared.NewDomainError("TOKEN_MAX_REFRESH", "Batas perpanjangan sesi tercapai, silakan login kembali")
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: identity.MaxLoginAttempts,
		LockDuration:     identity.LockDuration,
	}
}

// LoginMetrics counts login attempts
type LoginMetrics interface {
	RecordLogin(ctx context.Context, success bool)
}

// AuthService handles authentication operations
type AuthService struct {
	adminRepo  identity.AdminRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	audit      auditapp.Recorder
	metrics    LoginMetrics
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. metrics may be nil.
func NewAuthService(
	adminRepo identity.AdminRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	audit auditapp.Recorder,
	metrics LoginMetrics,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		audit:      audit,
		metrics:    metrics,
		config:     config,
		logger:     logger,
	}
}

func (s *AuthService) recordLogin(ctx context.Context, success bool) {
	if s.metrics != nil {
		s.metrics.RecordLogin(ctx, success)
	}
}

// Login authenticates an admin by username or email and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	admin, err := s.adminRepo.FindByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, identity.ErrAdminNotFound) {
			s.logger.Warn("Login for unknown admin", zap.String("login", input.Login))
			s.recordLogin(ctx, false)
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := admin.CanLogin(); err != nil {
		s.logger.Warn("Login refused", zap.String("username", admin.Username), zap.Error(err))
		s.recordLogin(ctx, false)
		return nil, err
	}

	if !admin.VerifyPassword(input.Password) {
		locked := admin.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.adminRepo.Update(ctx, admin); err != nil {
			s.logger.Error("Failed to update admin after login failure", zap.Error(err))
		}
		s.recordLogin(ctx, false)
		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", admin.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, identity.ErrAccountLocked
		}
		s.logger.Warn("Invalid password attempt",
			zap.String("username", admin.Username),
			zap.Int("failed_attempts", admin.FailedAttempts))
		return nil, identity.ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(tokenInput(admin))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	admin.RecordLoginSuccess(input.IP)
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		s.logger.Error("Failed to update admin after successful login", zap.Error(err))
	}
	s.recordLogin(ctx, true)

	actor := auditlog.Actor{ID: admin.ID, Name: admin.Name, IP: input.IP, UserAgent: input.UserAgent}
	s.audit.Record(auditlog.WithActor(ctx, actor), auditlog.ActionLogin, auditlog.EntityAdmin, &admin.ID, "Login ke dashboard")

	s.logger.Info("Admin logged in", zap.String("username", admin.Username), zap.String("admin_id", admin.ID.String()))

	return &LoginResult{
		TokenResult: toTokenResult(pair),
		Admin:       ToAdminResponse(admin),
	}, nil
}

// Refresh rotates a token pair. The presented refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Debug("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}
	if revoked, err := s.blacklist.IsRevoked(ctx, claims.ID); err != nil {
		return nil, err
	} else if revoked {
		return nil, ErrTokenRevoked
	}

	if revoked, err := s.blacklist.IsSessionRevoked(ctx, claims.UserID, claims.IssuedAtTime()); err != nil {
		return nil, err
	} else if revoked {
		return nil, ErrTokenRevoked
	}

	adminID, err := claims.AdminID()
	if err != nil {
		return nil, ErrTokenInvalid
	}
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, identity.ErrAdminNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if err := admin.CanLogin(); err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(claims, tokenInput(admin))
	if err != nil {
		return nil, mapTokenError(err)
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}

	result := toTokenResult(pair)
	return &result, nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessClaims == nil {
		return ErrTokenInvalid
	}
	if err := s.blacklist.Revoke(ctx, input.AccessClaims.ID, input.AccessClaims.RemainingTTL()); err != nil {
		return err
	}
	if input.RefreshToken != "" {
		if rc, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil && rc.UserID == input.AccessClaims.UserID {
			if err := s.blacklist.Revoke(ctx, rc.ID, rc.RemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token on logout", zap.Error(err))
			}
		}
	}

	var adminID *uuid.UUID
	if id, err := input.AccessClaims.AdminID(); err == nil {
		adminID = &id
	}
	s.audit.Record(ctx, auditlog.ActionLogout, auditlog.EntityAdmin, adminID, "Logout dari dashboard")
	return nil
}

// Me returns the logged-in admin
func (s *AuthService) Me(ctx context.Context, adminID uuid.UUID) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := ToAdminResponse(admin)
	return &resp, nil
}

// ChangePassword changes the password of the logged-in admin and ends all of
// their sessions issued before the change
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	admin, err := s.adminRepo.FindByID(ctx, input.AdminID)
	if err != nil {
		return err
	}
	if err := admin.ChangePassword(input.CurrentPassword, input.NewPassword, input.PasswordConfirmation); err != nil {
		return err
	}
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return err
	}
	if err := s.blacklist.RevokeAdminSessions(ctx, admin.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.String("admin_id", admin.ID.String()), zap.Error(err))
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityAdmin, &admin.ID, "Mengubah password")
	s.logger.Info("Admin password changed", zap.String("admin_id", admin.ID.String()))
	return nil
}

func tokenInput(a *identity.Admin) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{
		UserID:   a.ID,
		Username: a.Username,
		Name:     a.Name,
		Role:     string(a.Role),
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrTokenExpired
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return ErrTokenMaxRefresh
	case errors.Is(err, auth.ErrRevokedToken):
		return ErrTokenRevoked
	default:
		return ErrTokenInvalid
	}
}
