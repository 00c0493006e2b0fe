package umkm

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// UMKMRepository defines the interface for UMKM persistence
type UMKMRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UMKM, error)
	// FindAll supports search on name, owner and description, and filters "dusun" and "category"
	FindAll(ctx context.Context, filter shared.Filter) ([]UMKM, int64, error)
	Save(ctx context.Context, u *UMKM) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByNameInDusun(ctx context.Context, name string, dusun shared.Dusun, excludeID *uuid.UUID) (bool, error)
	CountByDusun(ctx context.Context) (map[shared.Dusun]int64, error)
}
