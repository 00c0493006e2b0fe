package travel

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for travel category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, int64, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

// TravelRepository defines the interface for destination persistence
type TravelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Travel, error)
	// FindAll supports search on name and description, and filters "dusun" and "category_id"
	FindAll(ctx context.Context, filter shared.Filter) ([]Travel, int64, error)
	Save(ctx context.Context, t *Travel) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByNameInDusun(ctx context.Context, name string, dusun shared.Dusun, excludeID *uuid.UUID) (bool, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
