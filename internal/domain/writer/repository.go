package writer

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// WriterRepository defines the interface for writer persistence
type WriterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Writer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Writer, error)
	// FindAll supports search on name and position, and the "dusun" filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Writer, int64, error)
	Save(ctx context.Context, w *Writer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByNameInDusun compares names case-insensitively, ignoring excludeID
	ExistsByNameInDusun(ctx context.Context, name string, dusun shared.Dusun, excludeID *uuid.UUID) (bool, error)
}
