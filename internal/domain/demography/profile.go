// Package demography holds the village monograph (monografis) and the statistics
// shown as infographics (infografis).
package demography

import (
	"strings"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var ErrProfileNotFound = shared.NewDomainError("PROFILE_NOT_FOUND", "Profil desa belum diisi")

// VillageProfile is the single general-information record of the village.
type VillageProfile struct {
	shared.BaseEntity
	VillageName   string          `gorm:"type:varchar(100);not null"`
	District      string          `gorm:"type:varchar(100)"` // kecamatan
	Regency       string          `gorm:"type:varchar(100)"` // kabupaten
	Province      string          `gorm:"type:varchar(100)"`
	VillageHead   string          `gorm:"type:varchar(100)"`
	AreaKm2       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AltitudeM     int             `gorm:"not null"`
	BoundaryNorth string          `gorm:"type:varchar(150)"`
	BoundarySouth string          `gorm:"type:varchar(150)"`
	BoundaryEast  string          `gorm:"type:varchar(150)"`
	BoundaryWest  string          `gorm:"type:varchar(150)"`
	PostalCode    string          `gorm:"type:varchar(10)"`
	Description   string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VillageProfile) TableName() string {
	return "village_profiles"
}

// ProfileDetails holds the editable fields of the profile
type ProfileDetails struct {
	VillageName   string
	District      string
	Regency       string
	Province      string
	VillageHead   string
	AreaKm2       decimal.Decimal
	AltitudeM     int
	BoundaryNorth string
	BoundarySouth string
	BoundaryEast  string
	BoundaryWest  string
	PostalCode    string
	Description   string
}

// NewVillageProfile creates the profile
func NewVillageProfile(d ProfileDetails) (*VillageProfile, error) {
	p := &VillageProfile{BaseEntity: shared.NewBaseEntity()}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the profile fields
func (p *VillageProfile) Update(d ProfileDetails) error {
	name := strings.TrimSpace(d.VillageName)
	if name == "" {
		return shared.NewDomainError("INVALID_VILLAGE_NAME", "Nama desa wajib diisi")
	}
	if d.AreaKm2.IsNegative() {
		return shared.NewDomainError("INVALID_AREA", "Luas wilayah tidak boleh negatif")
	}

	p.VillageName = name
	p.District = strings.TrimSpace(d.District)
	p.Regency = strings.TrimSpace(d.Regency)
	p.Province = strings.TrimSpace(d.Province)
	p.VillageHead = strings.TrimSpace(d.VillageHead)
	p.AreaKm2 = d.AreaKm2
	p.AltitudeM = d.AltitudeM
	p.BoundaryNorth = strings.TrimSpace(d.BoundaryNorth)
	p.BoundarySouth = strings.TrimSpace(d.BoundarySouth)
	p.BoundaryEast = strings.TrimSpace(d.BoundaryEast)
	p.BoundaryWest = strings.TrimSpace(d.BoundaryWest)
	p.PostalCode = strings.TrimSpace(d.PostalCode)
	p.Description = strings.TrimSpace(d.Description)
	p.Touch()
	return nil
}
