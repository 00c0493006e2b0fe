package demography

import (
	"strings"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// StatCategory groups population statistics
type StatCategory string

const (
	CategoryAgeGroup      StatCategory = "age_group"
	CategoryEducation     StatCategory = "education"
	CategoryOccupation    StatCategory = "occupation"
	CategoryReligion      StatCategory = "religion"
	CategoryMaritalStatus StatCategory = "marital_status"
)

// AllCategories returns the categories in display order
func AllCategories() []StatCategory {
	return []StatCategory{CategoryAgeGroup, CategoryEducation, CategoryOccupation, CategoryReligion, CategoryMaritalStatus}
}

// IsValid reports whether c is a known category
func (c StatCategory) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

var (
	ErrStatNotFound     = shared.NewDomainError("STAT_NOT_FOUND", "Data statistik tidak ditemukan")
	ErrInvalidCategory  = shared.NewDomainError("INVALID_CATEGORY", "Kategori statistik tidak valid")
	ErrNegativeQuantity = shared.NewDomainError("INVALID_COUNT", "Jumlah penduduk tidak boleh negatif")
)

// PopulationStat is the male/female count for one label of a category in one dusun,
// e.g. (education, "SMA/Sederajat", dusun_2).
type PopulationStat struct {
	shared.BaseEntity
	Category StatCategory `gorm:"type:varchar(30);not null;uniqueIndex:idx_population_stat_key,priority:1"`
	Label    string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_population_stat_key,priority:2"`
	Dusun    shared.Dusun `gorm:"type:varchar(20);not null;uniqueIndex:idx_population_stat_key,priority:3"`
	Male     int          `gorm:"not null"`
	Female   int          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PopulationStat) TableName() string {
	return "population_stats"
}

// Total returns male + female
func (s PopulationStat) Total() int {
	return s.Male + s.Female
}

// NewPopulationStat validates and creates a statistic row
func NewPopulationStat(category StatCategory, label string, dusun shared.Dusun, male, female int) (*PopulationStat, error) {
	s := &PopulationStat{BaseEntity: shared.NewBaseEntity()}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label statistik wajib diisi")
	}
	if len(label) > 100 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label statistik maksimal 100 karakter")
	}
	if !dusun.IsValid() {
		return nil, shared.ErrInvalidDusun
	}
	s.Category = category
	s.Label = label
	s.Dusun = dusun
	if err := s.SetCounts(male, female); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCounts replaces the counts
func (s *PopulationStat) SetCounts(male, female int) error {
	if male < 0 || female < 0 {
		return ErrNegativeQuantity
	}
	s.Male = male
	s.Female = female
	s.Touch()
	return nil
}

// DusunSummary holds the household and population totals of one dusun.
type DusunSummary struct {
	Dusun      shared.Dusun `gorm:"type:varchar(20);primaryKey"`
	Households int          `gorm:"not null"`
	Male       int          `gorm:"not null"`
	Female     int          `gorm:"not null"`
	UpdatedAt  time.Time    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DusunSummary) TableName() string {
	return "dusun_summaries"
}

// Total returns male + female
func (s DusunSummary) Total() int {
	return s.Male + s.Female
}

// NewDusunSummary validates and creates a summary row
func NewDusunSummary(dusun shared.Dusun, households, male, female int) (*DusunSummary, error) {
	if !dusun.IsValid() {
		return nil, shared.ErrInvalidDusun
	}
	if households < 0 || male < 0 || female < 0 {
		return nil, ErrNegativeQuantity
	}
	return &DusunSummary{
		Dusun:      dusun,
		Households: households,
		Male:       male,
		Female:     female,
		UpdatedAt:  time.Now(),
	}, nil
}
