// Package article contains the news and announcement posts of the village.
package article

import (
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// Status represents the publication status of an article
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

const (
	maxTitleLength = 200
	// ExcerptLength is the number of runes kept when an excerpt is derived from the content
	ExcerptLength = 200
)

var (
	ErrArticleNotFound   = shared.NewDomainError("ARTICLE_NOT_FOUND", "Artikel tidak ditemukan")
	ErrSlugAlreadyExists = shared.NewDomainError("SLUG_ALREADY_EXISTS", "Slug artikel sudah digunakan")
	ErrAlreadyPublished  = shared.NewDomainError("ALREADY_PUBLISHED", "Artikel sudah dipublikasikan")
	ErrNotPublished      = shared.NewDomainError("NOT_PUBLISHED", "Artikel belum dipublikasikan")
)

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Article is a post written by a Writer. Content is HTML produced by the dashboard editor
// and is stored as-is.
type Article struct {
	shared.BaseEntity
	Title         string     `gorm:"type:varchar(200);not null"`
	Slug          string     `gorm:"type:varchar(220);not null;uniqueIndex"`
	Excerpt       string     `gorm:"type:text"`
	Content       string     `gorm:"type:text;not null"`
	CoverImageURL string     `gorm:"type:varchar(500)"`
	WriterID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status        Status     `gorm:"type:varchar(20);not null;index"`
	PublishedAt   *time.Time `gorm:"index"`
	ViewCount     int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Article) TableName() string {
	return "articles"
}

// Draft holds the editable fields of an article
type Draft struct {
	Title         string
	Excerpt       string
	Content       string
	CoverImageURL string
	WriterID      uuid.UUID
}

// NewArticle creates a draft article. The slug is derived from the title.
func NewArticle(d Draft) (*Article, error) {
	a := &Article{
		BaseEntity: shared.NewBaseEntity(),
		Status:     StatusDraft,
	}
	if err := a.apply(d); err != nil {
		return nil, err
	}
	a.Slug = shared.Slugify(a.Title)
	if a.Slug == "" {
		a.Slug = a.ID.String()
	}
	return a, nil
}

// Update replaces the editable fields. The slug is kept stable once created.
func (a *Article) Update(d Draft) error {
	if err := a.apply(d); err != nil {
		return err
	}
	a.Touch()
	return nil
}

// SetSlug overrides the generated slug, e.g. to resolve a collision.
func (a *Article) SetSlug(slug string) error {
	slug = shared.Slugify(slug)
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug tidak valid")
	}
	a.Slug = slug
	return nil
}

// Publish makes the article visible on the public site
func (a *Article) Publish() error {
	if a.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	now := time.Now()
	a.Status = StatusPublished
	a.PublishedAt = &now
	a.UpdatedAt = now
	return nil
}

// Unpublish moves the article back to draft
func (a *Article) Unpublish() error {
	if a.Status != StatusPublished {
		return ErrNotPublished
	}
	a.Status = StatusDraft
	a.PublishedAt = nil
	a.Touch()
	return nil
}

// IsPublished returns true if the article is visible to the public
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

func (a *Article) apply(d Draft) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Judul artikel wajib diisi")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return shared.NewDomainError("INVALID_TITLE", "Judul artikel maksimal 200 karakter")
	}
	if strings.TrimSpace(PlainText(d.Content)) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Isi artikel wajib diisi")
	}
	if d.WriterID == uuid.Nil {
		return shared.NewDomainError("INVALID_WRITER", "Penulis wajib dipilih")
	}
	if len(d.CoverImageURL) > 500 {
		return shared.NewDomainError("INVALID_COVER_IMAGE", "URL gambar maksimal 500 karakter")
	}

	a.Title = title
	a.Content = d.Content
	a.CoverImageURL = strings.TrimSpace(d.CoverImageURL)
	a.WriterID = d.WriterID
	a.Excerpt = strings.TrimSpace(d.Excerpt)
	if a.Excerpt == "" {
		a.Excerpt = MakeExcerpt(d.Content, ExcerptLength)
	}
	return nil
}

// PlainText strips markup from editor HTML and collapses whitespace.
func PlainText(content string) string {
	text := tagRegex.ReplaceAllString(content, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// MakeExcerpt returns the first n runes of the plain text of content.
func MakeExcerpt(content string, n int) string {
	text := PlainText(content)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
