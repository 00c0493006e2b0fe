package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/article"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormArticleRepository implements ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// FindByID finds an article by ID
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	var a article.Article
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, article.ErrArticleNotFound)
	}
	return &a, nil
}

// FindBySlug finds an article by its slug
func (r *GormArticleRepository) FindBySlug(ctx context.Context, slug string) (*article.Article, error) {
	var a article.Article
	if err := r.db.WithContext(ctx).First(&a, "slug = ?", slug).Error; err != nil {
		return nil, notFound(err, article.ErrArticleNotFound)
	}
	return &a, nil
}

// FindAll returns a page of articles and the total count
func (r *GormArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]article.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&article.Article{})
	query = search(query, filter.Search, "title", "excerpt")
	if status, ok := stringFilter(filter, "status"); ok {
		query = query.Where("status = ?", status)
	}
	if writerID, ok := stringFilter(filter, "writer_id"); ok {
		query = query.Where("writer_id = ?", writerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []article.Article
	if err := paginate(query, filter, articleSortColumns, "created_at").Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// Save creates or updates an article. view_count is owned by
// IncrementViewCount and never written from a loaded copy.
func (r *GormArticleRepository) Save(ctx context.Context, a *article.Article) error {
	return r.db.WithContext(ctx).Omit("view_count").Save(a).Error
}

// Delete removes an article
func (r *GormArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&article.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return article.ErrArticleNotFound
	}
	return nil
}

// ExistsBySlug checks whether a slug is taken
func (r *GormArticleRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&article.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CountByWriter counts articles written by a writer
func (r *GormArticleRepository) CountByWriter(ctx context.Context, writerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&article.Article{}).Where("writer_id = ?", writerID).Count(&count).Error
	return count, err
}

// IncrementViewCount atomically adds one to view_count
func (r *GormArticleRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&article.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// Ensure GormArticleRepository implements ArticleRepository
var _ article.ArticleRepository = (*GormArticleRepository)(nil)
