package travel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrTravelNotFound      = shared.NewDomainError("TRAVEL_NOT_FOUND", "Destinasi wisata tidak ditemukan")
	ErrTravelAlreadyExists = shared.NewDomainError("TRAVEL_ALREADY_EXISTS", "Destinasi wisata dengan nama tersebut sudah ada di dusun ini")
)

// Facilities is a list of amenities stored as a JSON array column.
type Facilities []string

// Value implements driver.Valuer
func (f Facilities) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (f *Facilities) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*f = Facilities{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("facilities: unsupported type %T", value)
	}
	if len(raw) == 0 {
		*f = Facilities{}
		return nil
	}
	return json.Unmarshal(raw, f)
}

// Travel is a tourism destination in the village.
type Travel struct {
	shared.BaseEntity
	Name         string          `gorm:"type:varchar(150);not null"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Dusun        shared.Dusun    `gorm:"type:varchar(20);not null;index"`
	Description  string          `gorm:"type:text"`
	Address      string          `gorm:"type:varchar(255)"`
	ImageURL     string          `gorm:"type:varchar(500)"`
	TicketPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OpeningHours string          `gorm:"type:varchar(100)"`
	Facilities   Facilities      `gorm:"type:text"`
	Latitude     *float64
	Longitude    *float64
}

// TableName returns the table name for GORM
func (Travel) TableName() string {
	return "travels"
}

// Details holds the editable fields of a destination
type Details struct {
	Name         string
	CategoryID   uuid.UUID
	Dusun        shared.Dusun
	Description  string
	Address      string
	ImageURL     string
	TicketPrice  decimal.Decimal
	OpeningHours string
	Facilities   []string
	Latitude     *float64
	Longitude    *float64
}

// NewTravel creates a new destination
func NewTravel(d Details) (*Travel, error) {
	t := &Travel{BaseEntity: shared.NewBaseEntity()}
	if err := t.apply(d); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the editable fields
func (t *Travel) Update(d Details) error {
	if err := t.apply(d); err != nil {
		return err
	}
	t.Touch()
	return nil
}

// IsFree returns true if the destination has no entrance ticket
func (t *Travel) IsFree() bool {
	return t.TicketPrice.IsZero()
}

func (t *Travel) apply(d Details) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Nama destinasi wajib diisi")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Nama destinasi maksimal 150 karakter")
	}
	if d.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Kategori wisata wajib dipilih")
	}
	if !d.Dusun.IsValid() {
		return shared.ErrInvalidDusun
	}
	if d.TicketPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Harga tiket tidak boleh negatif")
	}
	if err := shared.ValidateCoordinates(d.Latitude, d.Longitude); err != nil {
		return err
	}

	facilities := make(Facilities, 0, len(d.Facilities))
	seen := make(map[string]bool, len(d.Facilities))
	for _, f := range d.Facilities {
		f = strings.TrimSpace(f)
		key := strings.ToLower(f)
		if f == "" || seen[key] {
			continue
		}
		seen[key] = true
		facilities = append(facilities, f)
	}

	t.Name = name
	t.CategoryID = d.CategoryID
	t.Dusun = d.Dusun
	t.Description = strings.TrimSpace(d.Description)
	t.Address = strings.TrimSpace(d.Address)
	t.ImageURL = strings.TrimSpace(d.ImageURL)
	t.TicketPrice = d.TicketPrice
	t.OpeningHours = strings.TrimSpace(d.OpeningHours)
	t.Facilities = facilities
	t.Latitude = d.Latitude
	t.Longitude = d.Longitude
	return nil
}
