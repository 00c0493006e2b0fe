// Package writer holds the authors that articles are attributed to.
package writer

import (
	"strings"

	"github.com/laiyolobaru/backend/internal/domain/shared"
)

var (
	ErrWriterNotFound      = shared.NewDomainError("WRITER_NOT_FOUND", "Penulis tidak ditemukan")
	ErrWriterAlreadyExists = shared.NewDomainError("WRITER_ALREADY_EXISTS", "Penulis dengan nama tersebut sudah ada di dusun ini")
	ErrWriterHasArticles   = shared.NewDomainError("WRITER_HAS_ARTICLES", "Penulis masih memiliki artikel dan tidak dapat dihapus")
)

// Writer is a village staff member or resident credited on articles.
type Writer struct {
	shared.BaseEntity
	Name     string       `gorm:"type:varchar(100);not null"`
	Dusun    shared.Dusun `gorm:"type:varchar(20);not null;index"`
	Position string       `gorm:"type:varchar(100)"`
	Phone    string       `gorm:"type:varchar(30)"`
	Bio      string       `gorm:"type:text"`
	PhotoURL string       `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Writer) TableName() string {
	return "writers"
}

// Profile holds the editable fields of a writer.
type Profile struct {
	Name     string
	Dusun    shared.Dusun
	Position string
	Phone    string
	Bio      string
	PhotoURL string
}

// NewWriter creates a new writer
func NewWriter(p Profile) (*Writer, error) {
	w := &Writer{BaseEntity: shared.NewBaseEntity()}
	if err := w.apply(p); err != nil {
		return nil, err
	}
	return w, nil
}

// Update replaces the writer's profile
func (w *Writer) Update(p Profile) error {
	if err := w.apply(p); err != nil {
		return err
	}
	w.Touch()
	return nil
}

func (w *Writer) apply(p Profile) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Nama penulis wajib diisi")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Nama penulis maksimal 100 karakter")
	}
	if !p.Dusun.IsValid() {
		return shared.ErrInvalidDusun
	}
	if len(p.Phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Nomor telepon maksimal 30 karakter")
	}
	if len(p.PhotoURL) > 500 {
		return shared.NewDomainError("INVALID_PHOTO_URL", "URL foto maksimal 500 karakter")
	}

	w.Name = name
	w.Dusun = p.Dusun
	w.Position = strings.TrimSpace(p.Position)
	w.Phone = strings.TrimSpace(p.Phone)
	w.Bio = strings.TrimSpace(p.Bio)
	w.PhotoURL = strings.TrimSpace(p.PhotoURL)
	return nil
}
