// Package travel models tourism destinations and their categories.
package travel

import (
	"strings"

	"github.com/laiyolobaru/backend/internal/domain/shared"
)

var (
	ErrCategoryNotFound      = shared.NewDomainError("CATEGORY_NOT_FOUND", "Kategori wisata tidak ditemukan")
	ErrCategoryAlreadyExists = shared.NewDomainError("CATEGORY_ALREADY_EXISTS", "Kategori wisata dengan nama tersebut sudah ada")
	ErrCategoryInUse         = shared.NewDomainError("CATEGORY_IN_USE", "Kategori masih digunakan oleh destinasi wisata")
)

// Category groups destinations, e.g. "Wisata Bahari" or "Wisata Budaya".
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "travel_categories"
}

// NewCategory creates a new travel category
func NewCategory(name, description string) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity()}
	if err := c.Update(name, description); err != nil {
		return nil, err
	}
	c.UpdatedAt = c.CreatedAt
	return c, nil
}

// Update renames the category. The slug follows the name.
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Nama kategori wajib diisi")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Nama kategori maksimal 100 karakter")
	}
	slug := shared.Slugify(name)
	if slug == "" {
		return shared.NewDomainError("INVALID_NAME", "Nama kategori harus mengandung huruf atau angka")
	}

	c.Name = name
	c.Slug = slug
	c.Description = strings.TrimSpace(description)
	c.Touch()
	return nil
}
