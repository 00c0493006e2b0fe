package demography

import (
	"time"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/shopspring/decimal"
)

// StatFilter narrows the statistic list
type StatFilter struct {
	Category string
	Dusun    string
}

// StatInput is one (category, label, dusun) count
type StatInput struct {
	Category string
	Label    string
	Dusun    string
	Male     int
	Female   int
}

// DusunSummaryInput holds the totals of one dusun
type DusunSummaryInput struct {
	Households int
	Male       int
	Female     int
}

// ProfileResponse is the API view of the village profile
type ProfileResponse struct {
	ID            uuid.UUID       `json:"id"`
	VillageName   string          `json:"village_name"`
	District      string          `json:"district"`
	Regency       string          `json:"regency"`
	Province      string          `json:"province"`
	VillageHead   string          `json:"village_head"`
	AreaKm2       decimal.Decimal `json:"area_km2"`
	AltitudeM     int             `json:"altitude_m"`
	BoundaryNorth string          `json:"boundary_north"`
	BoundarySouth string          `json:"boundary_south"`
	BoundaryEast  string          `json:"boundary_east"`
	BoundaryWest  string          `json:"boundary_west"`
	PostalCode    string          `json:"postal_code"`
	Description   string          `json:"description"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProfileResponse converts the profile. A nil profile yields nil.
func ToProfileResponse(p *demography.VillageProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:            p.ID,
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
		UpdatedAt:     p.UpdatedAt,
	}
}

// MonografisResponse is the public monograph
type MonografisResponse struct {
	Profile   *ProfileResponse      `json:"profile"`
	Dusun     []demography.DusunRow `json:"dusun"`
	Totals    demography.Totals     `json:"totals"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

// ToMonografisResponse converts the monograph
func ToMonografisResponse(m demography.Monografis) MonografisResponse {
	resp := MonografisResponse{
		Profile: ToProfileResponse(m.Profile),
		Dusun:   m.Dusun,
		Totals:  m.Totals,
	}
	if !m.UpdatedAt.IsZero() {
		updated := m.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// StatResponse is the API view of a statistic row
type StatResponse struct {
	ID         uuid.UUID `json:"id"`
	Category   string    `json:"category"`
	Label      string    `json:"label"`
	Dusun      string    `json:"dusun"`
	DusunLabel string    `json:"dusun_label"`
	Male       int       `json:"male"`
	Female     int       `json:"female"`
	Total      int       `json:"total"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToStatResponse converts a statistic row
func ToStatResponse(s *demography.PopulationStat) StatResponse {
	return StatResponse{
		ID:         s.ID,
		Category:   string(s.Category),
		Label:      s.Label,
		Dusun:      string(s.Dusun),
		DusunLabel: s.Dusun.Label(),
		Male:       s.Male,
		Female:     s.Female,
		Total:      s.Total(),
		UpdatedAt:  s.UpdatedAt,
	}
}
