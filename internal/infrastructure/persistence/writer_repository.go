package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/writer"
	"gorm.io/gorm"
)

// GormWriterRepository implements WriterRepository using GORM
type GormWriterRepository struct {
	db *gorm.DB
}

// NewGormWriterRepository creates a new GormWriterRepository
func NewGormWriterRepository(db *gorm.DB) *GormWriterRepository {
	return &GormWriterRepository{db: db}
}

// FindByID finds a writer by ID
func (r *GormWriterRepository) FindByID(ctx context.Context, id uuid.UUID) (*writer.Writer, error) {
	var w writer.Writer
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, notFound(err, writer.ErrWriterNotFound)
	}
	return &w, nil
}

// FindByIDs loads several writers at once. Missing IDs are skipped.
func (r *GormWriterRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]writer.Writer, error) {
	if len(ids) == 0 {
		return []writer.Writer{}, nil
	}
	var writers []writer.Writer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&writers).Error; err != nil {
		return nil, err
	}
	return writers, nil
}

// FindAll returns a page of writers and the total count
func (r *GormWriterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]writer.Writer, int64, error) {
	query := r.db.WithContext(ctx).Model(&writer.Writer{})
	query = search(query, filter.Search, "name", "position")
	if dusun, ok := stringFilter(filter, "dusun"); ok {
		query = query.Where("dusun = ?", dusun)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var writers []writer.Writer
	if err := paginate(query, filter, writerSortColumns, "name").Find(&writers).Error; err != nil {
		return nil, 0, err
	}
	return writers, total, nil
}

// Save creates or updates a writer
func (r *GormWriterRepository) Save(ctx context.Context, w *writer.Writer) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete removes a writer
func (r *GormWriterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&writer.Writer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return writer.ErrWriterNotFound
	}
	return nil
}

// ExistsByNameInDusun checks for another writer with the same name in the dusun
func (r *GormWriterRepository) ExistsByNameInDusun(ctx context.Context, name string, dusun shared.Dusun, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&writer.Writer{}).
		Where("LOWER(name) = ? AND dusun = ?", strings.ToLower(strings.TrimSpace(name)), dusun)
	err := excludeID(query, exclude).Count(&count).Error
	return count > 0, err
}

// Ensure GormWriterRepository implements WriterRepository
var _ writer.WriterRepository = (*GormWriterRepository)(nil)
