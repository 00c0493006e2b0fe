package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrCannotDeleteSelf     = shared.NewDomainError("CANNOT_DELETE_SELF", "Anda tidak dapat menghapus akun sendiri")
	ErrCannotDeactivateSelf = shared.NewDomainError("CANNOT_DEACTIVATE_SELF", "Anda tidak dapat menonaktifkan akun sendiri")
)

var adminSortFields = []string{"created_at", "updated_at", "name", "username", "email", "role", "last_login_at"}

// SessionRevoker ends every session of an admin
type SessionRevoker interface {
	RevokeAdminSessions(ctx context.Context, adminID string, ttl time.Duration) error
}

// AdminService manages dashboard accounts. Callers must be super admins.
type AdminService struct {
	adminRepo  identity.AdminRepository
	audit      auditapp.Recorder
	revoker    SessionRevoker
	sessionTTL time.Duration
	logger     *zap.Logger
}

// AdminServiceOption configures an AdminService
type AdminServiceOption func(*AdminService)

// WithSessionRevoker ends the sessions of admins that are deactivated,
// deleted or get a new password. ttl is the longest token lifetime.
func WithSessionRevoker(revoker SessionRevoker, ttl time.Duration) AdminServiceOption {
	return func(s *AdminService) {
		s.revoker = revoker
		s.sessionTTL = ttl
	}
}

// NewAdminService creates a new AdminService
func NewAdminService(adminRepo identity.AdminRepository, audit auditapp.Recorder, logger *zap.Logger, opts ...AdminServiceOption) *AdminService {
	s := &AdminService{adminRepo: adminRepo, audit: audit, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AdminService) revokeSessions(ctx context.Context, id uuid.UUID) {
	if s.revoker == nil {
		return
	}
	if err := s.revoker.RevokeAdminSessions(ctx, id.String(), s.sessionTTL); err != nil {
		s.logger.Error("Failed to revoke admin sessions", zap.String("admin_id", id.String()), zap.Error(err))
	}
}

// List returns a page of admins
func (s *AdminService) List(ctx context.Context, filter AdminListFilter) ([]AdminResponse, int64, error) {
	f, err := filter.ListQuery.ToFilter(adminSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	if filter.Role != "" {
		if !identity.Role(filter.Role).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ROLE", "Role tidak valid")
		}
		f.Filters["role"] = filter.Role
	}
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}

	admins, total, err := s.adminRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AdminResponse, len(admins))
	for i := range admins {
		out[i] = ToAdminResponse(&admins[i])
	}
	return out, total, nil
}

// GetByID returns one admin
func (s *AdminService) GetByID(ctx context.Context, id uuid.UUID) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAdminResponse(admin)
	return &resp, nil
}

// Create adds a new admin
func (s *AdminService) Create(ctx context.Context, input CreateAdminInput) (*AdminResponse, error) {
	admin, err := identity.NewAdmin(input.Name, input.Username, input.Email, input.Password, input.PasswordConfirmation, identity.Role(input.Role))
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, admin.Username, admin.Email, nil); err != nil {
		return nil, err
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionCreate, auditlog.EntityAdmin, &admin.ID,
		fmt.Sprintf("Menambah admin %s (%s)", admin.Username, admin.Role))
	resp := ToAdminResponse(admin)
	return &resp, nil
}

// Update edits an admin. actorID is the admin performing the change.
func (s *AdminService) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateAdminInput) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deactivating := input.IsActive != nil && !*input.IsActive && admin.IsActive
	if deactivating && actorID == id {
		return nil, ErrCannotDeactivateSelf
	}
	demoting := admin.IsSuperAdmin() && identity.Role(input.Role) != identity.RoleSuperAdmin
	if admin.IsSuperAdmin() && admin.IsActive && (demoting || deactivating) {
		if err := s.ensureNotLastSuperAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := admin.Update(input.Name, input.Email, identity.Role(input.Role)); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, "", admin.Email, &admin.ID); err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		admin.SetActive(*input.IsActive)
	}
	resetting := input.Password != "" || input.PasswordConfirmation != ""
	if resetting {
		if err := admin.ResetPassword(input.Password, input.PasswordConfirmation); err != nil {
			return nil, err
		}
	}
	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	if deactivating || resetting {
		s.revokeSessions(ctx, admin.ID)
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityAdmin, &admin.ID,
		fmt.Sprintf("Mengubah admin %s", admin.Username))
	resp := ToAdminResponse(admin)
	return &resp, nil
}

// Delete removes an admin. Admins cannot delete themselves or the last super admin.
func (s *AdminService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if admin.IsSuperAdmin() && admin.IsActive {
		if err := s.ensureNotLastSuperAdmin(ctx); err != nil {
			return err
		}
	}
	if err := s.adminRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeSessions(ctx, id)

	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityAdmin, &id,
		fmt.Sprintf("Menghapus admin %s", admin.Username))
	s.logger.Info("Admin deleted", zap.String("admin_id", id.String()))
	return nil
}

func (s *AdminService) ensureUnique(ctx context.Context, username, email string, excludeID *uuid.UUID) error {
	if username != "" {
		taken, err := s.adminRepo.ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return identity.ErrUsernameTaken
		}
	}
	taken, err := s.adminRepo.ExistsByEmail(ctx, strings.ToLower(email), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return identity.ErrEmailTaken
	}
	return nil
}

func (s *AdminService) ensureNotLastSuperAdmin(ctx context.Context) error {
	count, err := s.adminRepo.CountActiveSuperAdmins(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return identity.ErrLastSuperAdmin
	}
	return nil
}
