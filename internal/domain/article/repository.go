package article

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	// FindAll supports search on title and excerpt, and filters "status" and "writer_id"
	FindAll(ctx context.Context, filter shared.Filter) ([]Article, int64, error)
	Save(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	CountByWriter(ctx context.Context, writerID uuid.UUID) (int64, error)
	// IncrementViewCount adds one view without loading the row
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}
