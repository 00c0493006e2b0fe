package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/travel"
	"gorm.io/gorm"
)

// GormTravelCategoryRepository implements travel.CategoryRepository using GORM
type GormTravelCategoryRepository struct {
	db *gorm.DB
}

// NewGormTravelCategoryRepository creates a new GormTravelCategoryRepository
func NewGormTravelCategoryRepository(db *gorm.DB) *GormTravelCategoryRepository {
	return &GormTravelCategoryRepository{db: db}
}

// FindByID finds a category by ID
func (r *GormTravelCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*travel.Category, error) {
	var c travel.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, travel.ErrCategoryNotFound)
	}
	return &c, nil
}

// FindByIDs loads several categories at once
func (r *GormTravelCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]travel.Category, error) {
	if len(ids) == 0 {
		return []travel.Category{}, nil
	}
	var categories []travel.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindAll returns a page of categories and the total count
func (r *GormTravelCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]travel.Category, int64, error) {
	query := search(r.db.WithContext(ctx).Model(&travel.Category{}), filter.Search, "name", "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []travel.Category
	if err := paginate(query, filter, travelCategorySortColumns, "name").Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Save creates or updates a category
func (r *GormTravelCategoryRepository) Save(ctx context.Context, c *travel.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a category
func (r *GormTravelCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&travel.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return travel.ErrCategoryNotFound
	}
	return nil
}

// ExistsByName checks for another category with the same name, case-insensitively
func (r *GormTravelCategoryRepository) ExistsByName(ctx context.Context, name string, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&travel.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	err := excludeID(query, exclude).Count(&count).Error
	return count > 0, err
}

// GormTravelRepository implements travel.TravelRepository using GORM
type GormTravelRepository struct {
	db *gorm.DB
}

// NewGormTravelRepository creates a new GormTravelRepository
func NewGormTravelRepository(db *gorm.DB) *GormTravelRepository {
	return &GormTravelRepository{db: db}
}

// FindByID finds a destination by ID
func (r *GormTravelRepository) FindByID(ctx context.Context, id uuid.UUID) (*travel.Travel, error) {
	var t travel.Travel
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err, travel.ErrTravelNotFound)
	}
	return &t, nil
}

// FindAll returns a page of destinations and the total count
func (r *GormTravelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]travel.Travel, int64, error) {
	query := r.db.WithContext(ctx).Model(&travel.Travel{})
	query = search(query, filter.Search, "name", "description")
	if dusun, ok := stringFilter(filter, "dusun"); ok {
		query = query.Where("dusun = ?", dusun)
	}
	if categoryID, ok := stringFilter(filter, "category_id"); ok {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []travel.Travel
	if err := paginate(query, filter, travelSortColumns, "created_at").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Save creates or updates a destination
func (r *GormTravelRepository) Save(ctx context.Context, t *travel.Travel) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete removes a destination
func (r *GormTravelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&travel.Travel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return travel.ErrTravelNotFound
	}
	return nil
}

// ExistsByNameInDusun checks for another destination with the same name in the dusun
func (r *GormTravelRepository) ExistsByNameInDusun(ctx context.Context, name string, dusun shared.Dusun, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&travel.Travel{}).
		Where("LOWER(name) = ? AND dusun = ?", strings.ToLower(strings.TrimSpace(name)), dusun)
	err := excludeID(query, exclude).Count(&count).Error
	return count > 0, err
}

// CountByCategory counts destinations in a category
func (r *GormTravelRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&travel.Travel{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

var (
	_ travel.CategoryRepository = (*GormTravelCategoryRepository)(nil)
	_ travel.TravelRepository   = (*GormTravelRepository)(nil)
)
