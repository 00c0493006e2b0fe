// Package demography serves the public monografis and infografis pages and the
// dashboard forms that maintain their data.
package demography

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

const (
	cachePrefix       = "public:demography:"
	monografisKey     = cachePrefix + "monografis"
	infografisKey     = cachePrefix + "infografis"
	defaultCacheTTL   = 10 * time.Minute
	invalidateTimeout = 5 * time.Second
)

var ErrPDFRenderingDisabled = shared.NewDomainError("PDF_RENDERING_DISABLED", "Fitur unduh PDF sedang tidak tersedia")

// Printer renders the monograph to PDF
type Printer interface {
	PrintMonografis(ctx context.Context, m demography.Monografis) ([]byte, error)
}

// Config holds caching settings
type Config struct {
	CacheTTL         time.Duration
	DebounceInterval time.Duration
}

// Service handles the village profile and population statistics
type Service struct {
	repo        demography.DemographyRepository
	cache       cache.Cache
	printer     Printer
	audit       auditapp.Recorder
	config      Config
	logger      *zap.Logger
	invalidator *cache.Debouncer
}

// NewService creates a demography service. c and printer may be nil, which
// disables caching and PDF export respectively. Close must be called to flush
// pending cache invalidations.
func NewService(repo demography.DemographyRepository, c cache.Cache, printer Printer, audit auditapp.Recorder, config Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaultCacheTTL
	}
	s := &Service{
		repo:    repo,
		cache:   c,
		printer: printer,
		audit:   audit,
		config:  config,
		logger:  logger,
	}
	s.invalidator = cache.NewDebouncer(config.DebounceInterval, s.invalidate)
	return s
}

// Close flushes any pending invalidation
func (s *Service) Close() {
	s.invalidator.Stop()
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()
	if err := s.cache.DeletePrefix(ctx, cachePrefix); err != nil {
		s.logger.Warn("Failed to invalidate demography cache", zap.Error(err))
		return
	}
	s.logger.Debug("Demography cache invalidated")
}

// cached returns the value under key, computing and storing it on a miss.
// Cache failures fall back to computing the value.
func cached[T any](ctx context.Context, s *Service, key string, compute func(context.Context) (*T, error)) (*T, error) {
	if s.cache != nil {
		v, err := cache.GetJSON[T](ctx, s.cache, key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, v, s.config.CacheTTL); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

// Monografis returns the public monograph. A missing profile yields a null profile.
func (s *Service) Monografis(ctx context.Context) (*MonografisResponse, error) {
	return cached(ctx, s, monografisKey, func(ctx context.Context) (*MonografisResponse, error) {
		m, err := s.buildMonografis(ctx)
		if err != nil {
			return nil, err
		}
		resp := ToMonografisResponse(m)
		return &resp, nil
	})
}

// Infografis returns the aggregated public statistics
func (s *Service) Infografis(ctx context.Context) (*demography.Infografis, error) {
	return cached(ctx, s, infografisKey, func(ctx context.Context) (*demography.Infografis, error) {
		summaries, err := s.repo.ListDusunSummaries(ctx)
		if err != nil {
			return nil, err
		}
		stats, err := s.repo.ListStats(ctx, shared.Filter{})
		if err != nil {
			return nil, err
		}
		info := demography.BuildInfografis(summaries, stats)
		return &info, nil
	})
}

// MonografisPDF renders the monograph as an A4 PDF
func (s *Service) MonografisPDF(ctx context.Context) ([]byte, error) {
	if s.printer == nil {
		return nil, ErrPDFRenderingDisabled
	}
	m, err := s.buildMonografis(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := s.printer.PrintMonografis(ctx, m)
	if err != nil {
		if !errors.Is(err, ErrPDFRenderingDisabled) {
			s.logger.Error("Failed to render monografis PDF", zap.Error(err))
		}
		return nil, err
	}
	return pdf, nil
}

func (s *Service) buildMonografis(ctx context.Context) (demography.Monografis, error) {
	profile, err := s.repo.GetProfile(ctx)
	if err != nil {
		if !errors.Is(err, demography.ErrProfileNotFound) {
			return demography.Monografis{}, err
		}
		profile = nil
	}
	summaries, err := s.repo.ListDusunSummaries(ctx)
	if err != nil {
		return demography.Monografis{}, err
	}
	return demography.BuildMonografis(profile, summaries), nil
}

// GetProfile returns the village profile
func (s *Service) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return ToProfileResponse(p), nil
}

// UpdateProfile creates the profile on first use and replaces it afterwards
func (s *Service) UpdateProfile(ctx context.Context, input demography.ProfileDetails) (*ProfileResponse, error) {
	action := auditlog.ActionUpdate
	p, err := s.repo.GetProfile(ctx)
	switch {
	case errors.Is(err, demography.ErrProfileNotFound):
		action = auditlog.ActionCreate
		p, err = demography.NewVillageProfile(input)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := p.Update(input); err != nil {
			return nil, err
		}
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, action, auditlog.EntityVillageProfile, &p.ID, "Memperbarui profil desa")
	s.invalidator.Trigger()
	return ToProfileResponse(p), nil
}

// ListStats returns the statistic rows, optionally narrowed by category and dusun
func (s *Service) ListStats(ctx context.Context, filter StatFilter) ([]StatResponse, error) {
	f := shared.Filter{Filters: map[string]any{}}
	if filter.Category != "" {
		if !demography.StatCategory(filter.Category).IsValid() {
			return nil, demography.ErrInvalidCategory
		}
		f.Filters["category"] = filter.Category
	}
	if filter.Dusun != "" {
		d, err := shared.ParseDusun(filter.Dusun)
		if err != nil {
			return nil, err
		}
		f.Filters["dusun"] = string(d)
	}

	stats, err := s.repo.ListStats(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]StatResponse, len(stats))
	for i := range stats {
		out[i] = ToStatResponse(&stats[i])
	}
	return out, nil
}

// UpsertStat writes the counts for (category, label, dusun), creating the row when absent
func (s *Service) UpsertStat(ctx context.Context, input StatInput) (*StatResponse, error) {
	candidate, err := demography.NewPopulationStat(
		demography.StatCategory(input.Category), input.Label, shared.NormalizeDusun(input.Dusun), input.Male, input.Female)
	if err != nil {
		return nil, err
	}

	action := auditlog.ActionUpdate
	stat, err := s.repo.FindStatByKey(ctx, candidate.Category, candidate.Label, candidate.Dusun)
	switch {
	case errors.Is(err, demography.ErrStatNotFound):
		action = auditlog.ActionCreate
		stat = candidate
	case err != nil:
		return nil, err
	default:
		if err := stat.SetCounts(input.Male, input.Female); err != nil {
			return nil, err
		}
	}
	if err := s.repo.SaveStat(ctx, stat); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, action, auditlog.EntityPopulationStat, &stat.ID,
		fmt.Sprintf("Statistik %s %q %s: L %d, P %d", stat.Category, stat.Label, stat.Dusun.Label(), stat.Male, stat.Female))
	s.invalidator.Trigger()
	resp := ToStatResponse(stat)
	return &resp, nil
}

// DeleteStat removes a statistic row
func (s *Service) DeleteStat(ctx context.Context, id uuid.UUID) error {
	stat, err := s.repo.FindStatByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteStat(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityPopulationStat, &id,
		fmt.Sprintf("Menghapus statistik %s %q %s", stat.Category, stat.Label, stat.Dusun.Label()))
	s.invalidator.Trigger()
	return nil
}

// UpsertDusunSummary replaces the household and population totals of one dusun
func (s *Service) UpsertDusunSummary(ctx context.Context, dusun string, input DusunSummaryInput) (*demography.DusunRow, error) {
	d, err := shared.ParseDusun(dusun)
	if err != nil {
		return nil, err
	}
	summary, err := demography.NewDusunSummary(d, input.Households, input.Male, input.Female)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveDusunSummary(ctx, summary); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityDusunSummary, nil,
		fmt.Sprintf("Memperbarui data penduduk %s", d.Label()))
	s.invalidator.Trigger()
	return &demography.DusunRow{
		Dusun:      d,
		Label:      d.Label(),
		Households: summary.Households,
		Male:       summary.Male,
		Female:     summary.Female,
		Total:      summary.Total(),
	}, nil
}
