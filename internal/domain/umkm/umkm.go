// Package umkm models the micro, small and medium enterprises listed by the village.
package umkm

import (
	"strings"

	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category is the line of business of an UMKM
type Category string

const (
	CategoryKuliner   Category = "kuliner"
	CategoryKerajinan Category = "kerajinan"
	CategoryPertanian Category = "pertanian"
	CategoryPerikanan Category = "perikanan"
	CategoryJasa      Category = "jasa"
	CategoryLainnya   Category = "lainnya"
)

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryKuliner, CategoryKerajinan, CategoryPertanian, CategoryPerikanan, CategoryJasa, CategoryLainnya:
		return true
	}
	return false
}

var (
	ErrUMKMNotFound      = shared.NewDomainError("UMKM_NOT_FOUND", "UMKM tidak ditemukan")
	ErrUMKMAlreadyExists = shared.NewDomainError("UMKM_ALREADY_EXISTS", "UMKM dengan nama tersebut sudah ada di dusun ini")
)

// UMKM is a local business shown in the public directory.
type UMKM struct {
	shared.BaseEntity
	Name        string           `gorm:"type:varchar(150);not null"`
	OwnerName   string           `gorm:"type:varchar(100);not null"`
	Dusun       shared.Dusun     `gorm:"type:varchar(20);not null;index"`
	Category    Category         `gorm:"type:varchar(20);not null;index"`
	Description string           `gorm:"type:text"`
	Address     string           `gorm:"type:varchar(255)"`
	Phone       string           `gorm:"type:varchar(30)"`
	ImageURL    string           `gorm:"type:varchar(500)"`
	PriceMin    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	PriceMax    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Latitude    *float64
	Longitude   *float64
}

// TableName returns the table name for GORM
func (UMKM) TableName() string {
	return "umkm"
}

// Details holds the editable fields of an UMKM
type Details struct {
	Name        string
	OwnerName   string
	Dusun       shared.Dusun
	Category    Category
	Description string
	Address     string
	Phone       string
	ImageURL    string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	Latitude    *float64
	Longitude   *float64
}

// NewUMKM creates a new UMKM
func NewUMKM(d Details) (*UMKM, error) {
	u := &UMKM{BaseEntity: shared.NewBaseEntity()}
	if err := u.apply(d); err != nil {
		return nil, err
	}
	return u, nil
}

// Update replaces the editable fields
func (u *UMKM) Update(d Details) error {
	if err := u.apply(d); err != nil {
		return err
	}
	u.Touch()
	return nil
}

func (u *UMKM) apply(d Details) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Nama UMKM wajib diisi")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Nama UMKM maksimal 150 karakter")
	}
	owner := strings.TrimSpace(d.OwnerName)
	if owner == "" {
		return shared.NewDomainError("INVALID_OWNER", "Nama pemilik wajib diisi")
	}
	if !d.Dusun.IsValid() {
		return shared.ErrInvalidDusun
	}
	if !d.Category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Kategori UMKM tidak valid")
	}
	if err := validatePriceRange(d.PriceMin, d.PriceMax); err != nil {
		return err
	}
	if err := shared.ValidateCoordinates(d.Latitude, d.Longitude); err != nil {
		return err
	}

	u.Name = name
	u.OwnerName = owner
	u.Dusun = d.Dusun
	u.Category = d.Category
	u.Description = strings.TrimSpace(d.Description)
	u.Address = strings.TrimSpace(d.Address)
	u.Phone = strings.TrimSpace(d.Phone)
	u.ImageURL = strings.TrimSpace(d.ImageURL)
	u.PriceMin = d.PriceMin
	u.PriceMax = d.PriceMax
	u.Latitude = d.Latitude
	u.Longitude = d.Longitude
	return nil
}

func validatePriceRange(min, max *decimal.Decimal) error {
	if min != nil && min.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Harga minimum tidak boleh negatif")
	}
	if max != nil && max.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Harga maksimum tidak boleh negatif")
	}
	if min != nil && max != nil && min.GreaterThan(*max) {
		return shared.NewDomainError("INVALID_PRICE_RANGE", "Harga minimum tidak boleh lebih besar dari harga maksimum")
	}
	return nil
}
