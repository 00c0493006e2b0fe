package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// AdminRepository defines the interface for admin persistence
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	Update(ctx context.Context, admin *Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)

	// FindByLogin finds an admin whose username or email equals login
	FindByLogin(ctx context.Context, login string) (*Admin, error)

	// FindAll supports search on name, username and email, and filters "role" and "is_active"
	FindAll(ctx context.Context, filter shared.Filter) ([]Admin, int64, error)

	// ExistsByUsername checks if a username is taken by an admin other than excludeID
	ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)

	// ExistsByEmail checks if an email is taken by an admin other than excludeID
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// CountActiveSuperAdmins returns the number of active super admins
	CountActiveSuperAdmins(ctx context.Context) (int64, error)
}
