// Package seed loads initial data (first super admin, village profile,
// travel categories and population figures) from YAML files.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/travel"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Data is the content of one or more seed files merged together
type Data struct {
	Admins           []AdminSeed    `yaml:"admins"`
	VillageProfile   *ProfileSeed   `yaml:"village_profile"`
	TravelCategories []CategorySeed `yaml:"travel_categories"`
	DusunSummaries   []DusunSeed    `yaml:"dusun_summaries"`
	PopulationStats  []StatSeed     `yaml:"population_stats"`
}

// AdminSeed describes an admin account. Password may reference environment
// variables, e.g. "${DESA_SEED_ADMIN_PASSWORD}".
type AdminSeed struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// ProfileSeed is the village profile
type ProfileSeed struct {
	VillageName   string          `yaml:"village_name"`
	District      string          `yaml:"district"`
	Regency       string          `yaml:"regency"`
	Province      string          `yaml:"province"`
	VillageHead   string          `yaml:"village_head"`
	AreaKm2       decimal.Decimal `yaml:"area_km2"`
	AltitudeM     int             `yaml:"altitude_m"`
	BoundaryNorth string          `yaml:"boundary_north"`
	BoundarySouth string          `yaml:"boundary_south"`
	BoundaryEast  string          `yaml:"boundary_east"`
	BoundaryWest  string          `yaml:"boundary_west"`
	PostalCode    string          `yaml:"postal_code"`
	Description   string          `yaml:"description"`
}

// CategorySeed is a travel category
type CategorySeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DusunSeed is the population summary of one dusun
type DusunSeed struct {
	Dusun      string `yaml:"dusun"`
	Households int    `yaml:"households"`
	Male       int    `yaml:"male"`
	Female     int    `yaml:"female"`
}

// StatSeed is one categorized population figure
type StatSeed struct {
	Category string `yaml:"category"`
	Label    string `yaml:"label"`
	Dusun    string `yaml:"dusun"`
	Male     int    `yaml:"male"`
	Female   int    `yaml:"female"`
}

// Result counts what a run inserted or updated
type Result struct {
	Admins         int
	Profile        bool
	Categories     int
	DusunSummaries int
	Stats          int
}

// Load reads every *.yaml and *.yml file of fsys in name order and merges them.
// The village profile of a later file replaces an earlier one.
func Load(fsys fs.FS) (*Data, error) {
	var names []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		names = append(names, matches...)
	}
	sort.Strings(names)

	merged := &Data{}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", name, err)
		}
		var d Data
		dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(raw))))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse seed file %s: %w", path.Base(name), err)
		}
		merged.merge(&d)
	}
	return merged, nil
}

func (d *Data) merge(o *Data) {
	d.Admins = append(d.Admins, o.Admins...)
	if o.VillageProfile != nil {
		d.VillageProfile = o.VillageProfile
	}
	d.TravelCategories = append(d.TravelCategories, o.TravelCategories...)
	d.DusunSummaries = append(d.DusunSummaries, o.DusunSummaries...)
	d.PopulationStats = append(d.PopulationStats, o.PopulationStats...)
}

// Seeder writes seed data through the domain repositories. Running it twice
// does not create duplicates: admins, the profile and categories are only
// inserted when missing, while dusun summaries and statistics are upserted.
type Seeder struct {
	admins     identity.AdminRepository
	categories travel.CategoryRepository
	demography demography.DemographyRepository
	logger     *zap.Logger
}

// NewSeeder creates a seeder
func NewSeeder(
	admins identity.AdminRepository,
	categories travel.CategoryRepository,
	demographyRepo demography.DemographyRepository,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		admins:     admins,
		categories: categories,
		demography: demographyRepo,
		logger:     logger,
	}
}

// Run applies data
func (s *Seeder) Run(ctx context.Context, data *Data) (*Result, error) {
	res := &Result{}

	for _, a := range data.Admins {
		created, err := s.seedAdmin(ctx, a)
		if err != nil {
			return res, fmt.Errorf("admin %s: %w", a.Username, err)
		}
		if created {
			res.Admins++
		}
	}

	if data.VillageProfile != nil {
		created, err := s.seedProfile(ctx, data.VillageProfile)
		if err != nil {
			return res, fmt.Errorf("village profile: %w", err)
		}
		res.Profile = created
	}

	for _, c := range data.TravelCategories {
		created, err := s.seedCategory(ctx, c)
		if err != nil {
			return res, fmt.Errorf("travel category %s: %w", c.Name, err)
		}
		if created {
			res.Categories++
		}
	}

	for _, d := range data.DusunSummaries {
		if err := s.seedDusun(ctx, d); err != nil {
			return res, fmt.Errorf("dusun %s: %w", d.Dusun, err)
		}
		res.DusunSummaries++
	}

	for _, st := range data.PopulationStats {
		if err := s.seedStat(ctx, st); err != nil {
			return res, fmt.Errorf("statistic %s/%s/%s: %w", st.Category, st.Label, st.Dusun, err)
		}
		res.Stats++
	}

	s.logger.Info("Seed completed",
		zap.Int("admins", res.Admins),
		zap.Bool("profile", res.Profile),
		zap.Int("travel_categories", res.Categories),
		zap.Int("dusun_summaries", res.DusunSummaries),
		zap.Int("population_stats", res.Stats))
	return res, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, a AdminSeed) (bool, error) {
	exists, err := s.admins.ExistsByUsername(ctx, a.Username, nil)
	if err != nil {
		return false, err
	}
	if exists {
		s.logger.Debug("Admin already present", zap.String("username", a.Username))
		return false, nil
	}
	if a.Password == "" {
		return false, errors.New("password is empty; set it in the seed file or through the referenced environment variable")
	}

	role := identity.Role(a.Role)
	if role == "" {
		role = identity.RoleSuperAdmin
	}
	admin, err := identity.NewAdmin(a.Name, a.Username, a.Email, a.Password, a.Password, role)
	if err != nil {
		return false, err
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return false, err
	}
	s.logger.Info("Admin seeded", zap.String("username", admin.Username), zap.String("role", string(admin.Role)))
	return true, nil
}

func (s *Seeder) seedProfile(ctx context.Context, p *ProfileSeed) (bool, error) {
	_, err := s.demography.GetProfile(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, demography.ErrProfileNotFound) {
		return false, err
	}

	profile, err := demography.NewVillageProfile(demography.ProfileDetails{
		VillageName:   p.VillageName,
		District:      p.District,
		Regency:       p.Regency,
		Province:      p.Province,
		VillageHead:   p.VillageHead,
		AreaKm2:       p.AreaKm2,
		AltitudeM:     p.AltitudeM,
		BoundaryNorth: p.BoundaryNorth,
		BoundarySouth: p.BoundarySouth,
		BoundaryEast:  p.BoundaryEast,
		BoundaryWest:  p.BoundaryWest,
		PostalCode:    p.PostalCode,
		Description:   p.Description,
	})
	if err != nil {
		return false, err
	}
	return true, s.demography.SaveProfile(ctx, profile)
}

func (s *Seeder) seedCategory(ctx context.Context, c CategorySeed) (bool, error) {
	exists, err := s.categories.ExistsByName(ctx, c.Name, nil)
	if err != nil || exists {
		return false, err
	}
	cat, err := travel.NewCategory(c.Name, c.Description)
	if err != nil {
		return false, err
	}
	return true, s.categories.Save(ctx, cat)
}

func (s *Seeder) seedDusun(ctx context.Context, d DusunSeed) error {
	dusun, err := shared.ParseDusun(d.Dusun)
	if err != nil {
		return err
	}
	summary, err := demography.NewDusunSummary(dusun, d.Households, d.Male, d.Female)
	if err != nil {
		return err
	}
	return s.demography.SaveDusunSummary(ctx, summary)
}

func (s *Seeder) seedStat(ctx context.Context, st StatSeed) error {
	dusun, err := shared.ParseDusun(st.Dusun)
	if err != nil {
		return err
	}
	category := demography.StatCategory(st.Category)

	existing, err := s.demography.FindStatByKey(ctx, category, st.Label, dusun)
	switch {
	case err == nil:
		if err := existing.SetCounts(st.Male, st.Female); err != nil {
			return err
		}
		return s.demography.SaveStat(ctx, existing)
	case errors.Is(err, demography.ErrStatNotFound):
		stat, err := demography.NewPopulationStat(category, st.Label, dusun, st.Male, st.Female)
		if err != nil {
			return err
		}
		return s.demography.SaveStat(ctx, stat)
	default:
		return err
	}
}
