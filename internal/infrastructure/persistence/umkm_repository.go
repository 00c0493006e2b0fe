package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/umkm"
	"gorm.io/gorm"
)

// GormUMKMRepository implements UMKMRepository using GORM
type GormUMKMRepository struct {
	db *gorm.DB
}

// NewGormUMKMRepository creates a new GormUMKMRepository
func NewGormUMKMRepository(db *gorm.DB) *GormUMKMRepository {
	return &GormUMKMRepository{db: db}
}

// FindByID finds a UMKM by ID
func (r *GormUMKMRepository) FindByID(ctx context.Context, id uuid.UUID) (*umkm.UMKM, error) {
	var u umkm.UMKM
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, umkm.ErrUMKMNotFound)
	}
	return &u, nil
}

// FindAll returns a page of UMKM and the total count
func (r *GormUMKMRepository) FindAll(ctx context.Context, filter shared.Filter) ([]umkm.UMKM, int64, error) {
	query := r.db.WithContext(ctx).Model(&umkm.UMKM{})
	query = search(query, filter.Search, "name", "owner_name", "description")
	if dusun, ok := stringFilter(filter, "dusun"); ok {
		query = query.Where("dusun = ?", dusun)
	}
	if category, ok := stringFilter(filter, "category"); ok {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []umkm.UMKM
	if err := paginate(query, filter, umkmSortColumns, "created_at").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Save creates or updates a UMKM
func (r *GormUMKMRepository) Save(ctx context.Context, u *umkm.UMKM) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete removes a UMKM
func (r *GormUMKMRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&umkm.UMKM{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return umkm.ErrUMKMNotFound
	}
	return nil
}

// ExistsByNameInDusun checks for another UMKM with the same name in the dusun
func (r *GormUMKMRepository) ExistsByNameInDusun(ctx context.Context, name string, dusun shared.Dusun, exclude *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&umkm.UMKM{}).
		Where("LOWER(name) = ? AND dusun = ?", strings.ToLower(strings.TrimSpace(name)), dusun)
	err := excludeID(query, exclude).Count(&count).Error
	return count > 0, err
}

type dusunCount struct {
	Dusun shared.Dusun
	Total int64
}

// CountByDusun returns the number of UMKM per dusun. Dusun without UMKM are absent.
func (r *GormUMKMRepository) CountByDusun(ctx context.Context) (map[shared.Dusun]int64, error) {
	var rows []dusunCount
	if err := r.db.WithContext(ctx).Model(&umkm.UMKM{}).
		Select("dusun, COUNT(*) AS total").
		Group("dusun").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[shared.Dusun]int64, len(rows))
	for _, row := range rows {
		counts[row.Dusun] = row.Total
	}
	return counts, nil
}

// Ensure GormUMKMRepository implements UMKMRepository
var _ umkm.UMKMRepository = (*GormUMKMRepository)(nil)
