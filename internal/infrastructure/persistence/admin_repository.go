package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAdminRepository implements AdminRepository using GORM
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// Create inserts a new admin
func (r *GormAdminRepository) Create(ctx context.Context, admin *identity.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// Update saves all admin fields
func (r *GormAdminRepository) Update(ctx context.Context, admin *identity.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// Delete removes an admin
func (r *GormAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Admin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return identity.ErrAdminNotFound
	}
	return nil
}

// FindByID finds an admin by ID
func (r *GormAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Admin, error) {
	var admin identity.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, notFound(err, identity.ErrAdminNotFound)
	}
	return &admin, nil
}

// FindByLogin finds an admin by username or email, case-insensitively
func (r *GormAdminRepository) FindByLogin(ctx context.Context, login string) (*identity.Admin, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var admin identity.Admin
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", login, login).
		First(&admin).Error; err != nil {
		return nil, notFound(err, identity.ErrAdminNotFound)
	}
	return &admin, nil
}

// FindAll returns a page of admins and the total count
func (r *GormAdminRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Admin, int64, error) {
	query := r.db.WithContext(ctx).Model(&identity.Admin{})
	query = search(query, filter.Search, "name", "username", "email")
	if role, ok := stringFilter(filter, "role"); ok {
		query = query.Where("role = ?", role)
	}
	if active, ok := filter.Filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var admins []identity.Admin
	if err := paginate(query, filter, adminSortColumns, "created_at").Find(&admins).Error; err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

// ExistsByUsername checks whether a username is taken
func (r *GormAdminRepository) ExistsByUsername(ctx context.Context, username string, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.Admin{}).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))
	err := excludeID(query, exclude).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks whether an email is taken
func (r *GormAdminRepository) ExistsByEmail(ctx context.Context, email string, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.Admin{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
	err := excludeID(query, exclude).Count(&count).Error
	return count > 0, err
}

// CountActiveSuperAdmins counts active admins with the super_admin role
func (r *GormAdminRepository) CountActiveSuperAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Admin{}).
		Where("role = ? AND is_active = ?", identity.RoleSuperAdmin, true).
		Count(&count).Error
	return count, err
}

// Ensure GormAdminRepository implements AdminRepository
var _ identity.AdminRepository = (*GormAdminRepository)(nil)
