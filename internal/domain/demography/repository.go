package demography

import (
	"context"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// DemographyRepository defines the interface for monografis/infografis persistence
type DemographyRepository interface {
	GetProfile(ctx context.Context) (*VillageProfile, error)
	SaveProfile(ctx context.Context, p *VillageProfile) error

	ListDusunSummaries(ctx context.Context) ([]DusunSummary, error)
	SaveDusunSummary(ctx context.Context, s *DusunSummary) error

	// ListStats supports filters "category" and "dusun"
	ListStats(ctx context.Context, filter shared.Filter) ([]PopulationStat, error)
	FindStatByID(ctx context.Context, id uuid.UUID) (*PopulationStat, error)
	FindStatByKey(ctx context.Context, category StatCategory, label string, dusun shared.Dusun) (*PopulationStat, error)
	SaveStat(ctx context.Context, s *PopulationStat) error
	DeleteStat(ctx context.Context, id uuid.UUID) error
}
