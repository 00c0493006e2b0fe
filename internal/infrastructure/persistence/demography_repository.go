package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDemographyRepository implements DemographyRepository using GORM
type GormDemographyRepository struct {
	db *gorm.DB
}

// NewGormDemographyRepository creates a new GormDemographyRepository
func NewGormDemographyRepository(db *gorm.DB) *GormDemographyRepository {
	return &GormDemographyRepository{db: db}
}

// GetProfile returns the single village profile row
func (r *GormDemographyRepository) GetProfile(ctx context.Context) (*demography.VillageProfile, error) {
	var p demography.VillageProfile
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&p).Error; err != nil {
		return nil, notFound(err, demography.ErrProfileNotFound)
	}
	return &p, nil
}

// SaveProfile creates or updates the village profile
func (r *GormDemographyRepository) SaveProfile(ctx context.Context, p *demography.VillageProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// ListDusunSummaries returns the per-dusun summaries ordered by dusun
func (r *GormDemographyRepository) ListDusunSummaries(ctx context.Context) ([]demography.DusunSummary, error) {
	var summaries []demography.DusunSummary
	if err := r.db.WithContext(ctx).Order("dusun ASC").Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// SaveDusunSummary upserts the summary of one dusun
func (r *GormDemographyRepository) SaveDusunSummary(ctx context.Context, s *demography.DusunSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dusun"}},
		DoUpdates: clause.AssignmentColumns([]string{"households", "male", "female", "updated_at"}),
	}).Create(s).Error
}

// ListStats returns population statistics filtered by category and dusun
func (r *GormDemographyRepository) ListStats(ctx context.Context, filter shared.Filter) ([]demography.PopulationStat, error) {
	query := r.db.WithContext(ctx).Model(&demography.PopulationStat{})
	if category, ok := stringFilter(filter, "category"); ok {
		query = query.Where("category = ?", category)
	}
	if dusun, ok := stringFilter(filter, "dusun"); ok {
		query = query.Where("dusun = ?", dusun)
	}

	var stats []demography.PopulationStat
	if err := query.Order("category ASC, label ASC, dusun ASC").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// FindStatByID finds a population statistic by ID
func (r *GormDemographyRepository) FindStatByID(ctx context.Context, id uuid.UUID) (*demography.PopulationStat, error) {
	var s demography.PopulationStat
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err, demography.ErrStatNotFound)
	}
	return &s, nil
}

// FindStatByKey finds the statistic identified by (category, label, dusun)
func (r *GormDemographyRepository) FindStatByKey(ctx context.Context, category demography.StatCategory, label string, dusun shared.Dusun) (*demography.PopulationStat, error) {
	var s demography.PopulationStat
	if err := r.db.WithContext(ctx).
		Where("category = ? AND label = ? AND dusun = ?", category, label, dusun).
		First(&s).Error; err != nil {
		return nil, notFound(err, demography.ErrStatNotFound)
	}
	return &s, nil
}

// SaveStat creates or updates a population statistic
func (r *GormDemographyRepository) SaveStat(ctx context.Context, s *demography.PopulationStat) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// DeleteStat removes a population statistic
func (r *GormDemographyRepository) DeleteStat(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&demography.PopulationStat{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return demography.ErrStatNotFound
	}
	return nil
}

// Ensure GormDemographyRepository implements DemographyRepository
var _ demography.DemographyRepository = (*GormDemographyRepository)(nil)
