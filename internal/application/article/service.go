// Package article manages village news posts and their publication.
package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/article"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/writer"
	"go.uber.org/zap"
)

// maxSlugAttempts bounds the numeric suffixes tried before falling back to a random one
const maxSlugAttempts = 20

var (
	sortFields       = []string{"created_at", "updated_at", "title", "status", "published_at", "view_count"}
	publicSortFields = []string{"published_at", "title", "view_count"}

	ErrInvalidWriter = shared.NewDomainError("INVALID_WRITER", "Penulis yang dipilih tidak ditemukan")
)

// Service handles article operations
type Service struct {
	articleRepo article.ArticleRepository
	writerRepo  writer.WriterRepository
	audit       auditapp.Recorder
	logger      *zap.Logger
}

// NewService creates a new article Service
func NewService(articleRepo article.ArticleRepository, writerRepo writer.WriterRepository, audit auditapp.Recorder, logger *zap.Logger) *Service {
	return &Service{articleRepo: articleRepo, writerRepo: writerRepo, audit: audit, logger: logger}
}

// List returns a page of articles in any status
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	f, err := filter.ListQuery.ToFilter(sortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	if filter.Status != "" {
		if !article.Status(filter.Status).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Status artikel tidak valid")
		}
		f.Filters["status"] = filter.Status
	}
	if filter.WriterID != nil {
		f.Filters["writer_id"] = filter.WriterID.String()
	}
	return s.find(ctx, f)
}

// ListPublished returns a page of published articles, newest first by default
func (s *Service) ListPublished(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	f, err := filter.ListQuery.ToFilter(publicSortFields, "published_at")
	if err != nil {
		return nil, 0, err
	}
	f.Filters["status"] = string(article.StatusPublished)
	if filter.WriterID != nil {
		f.Filters["writer_id"] = filter.WriterID.String()
	}
	return s.find(ctx, f)
}

func (s *Service) find(ctx context.Context, f shared.Filter) ([]Response, int64, error) {
	articles, total, err := s.articleRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	writers, err := s.writersOf(ctx, articles)
	if err != nil {
		return nil, 0, err
	}
	out := make([]Response, len(articles))
	for i := range articles {
		out[i] = ToResponse(&articles[i], writers[articles[i].WriterID])
		// Lists carry the excerpt only
		out[i].Content = ""
	}
	return out, total, nil
}

func (s *Service) writersOf(ctx context.Context, articles []article.Article) (map[uuid.UUID]*writer.Writer, error) {
	seen := make(map[uuid.UUID]bool, len(articles))
	ids := make([]uuid.UUID, 0, len(articles))
	for _, a := range articles {
		if !seen[a.WriterID] {
			seen[a.WriterID] = true
			ids = append(ids, a.WriterID)
		}
	}
	writers, err := s.writerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*writer.Writer, len(writers))
	for i := range writers {
		byID[writers[i].ID] = &writers[i]
	}
	return byID, nil
}

// GetByID returns an article in any status
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	a, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withWriter(ctx, a)
}

// GetPublishedBySlug returns a published article and counts the view.
// Drafts are reported as not found.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*Response, error) {
	a, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished() {
		return nil, article.ErrArticleNotFound
	}
	if err := s.articleRepo.IncrementViewCount(ctx, a.ID); err != nil {
		s.logger.Warn("Failed to count article view", zap.String("article_id", a.ID.String()), zap.Error(err))
	} else {
		a.ViewCount++
	}
	return s.withWriter(ctx, a)
}

func (s *Service) withWriter(ctx context.Context, a *article.Article) (*Response, error) {
	w, err := s.writerRepo.FindByID(ctx, a.WriterID)
	if err != nil && !errors.Is(err, writer.ErrWriterNotFound) {
		return nil, err
	}
	resp := ToResponse(a, w)
	return &resp, nil
}

// Create adds an article as a draft, or published when input.Publish is set
func (s *Service) Create(ctx context.Context, input Input) (*Response, error) {
	a, err := article.NewArticle(input.toDraft())
	if err != nil {
		return nil, err
	}
	w, err := s.requireWriter(ctx, input.WriterID)
	if err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, a.Slug)
	if err != nil {
		return nil, err
	}
	if err := a.SetSlug(slug); err != nil {
		return nil, err
	}
	if input.Publish {
		if err := a.Publish(); err != nil {
			return nil, err
		}
	}
	if err := s.articleRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionCreate, auditlog.EntityArticle, &a.ID, fmt.Sprintf("Menambah artikel %q", a.Title))
	resp := ToResponse(a, w)
	return &resp, nil
}

// Update edits an article. The slug stays stable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*Response, error) {
	a, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	w, err := s.requireWriter(ctx, input.WriterID)
	if err != nil {
		return nil, err
	}
	if err := a.Update(input.toDraft()); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityArticle, &a.ID, fmt.Sprintf("Mengubah artikel %q", a.Title))
	resp := ToResponse(a, w)
	return &resp, nil
}

// Delete removes an article
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityArticle, &id, fmt.Sprintf("Menghapus artikel %q", a.Title))
	return nil
}

// Publish makes an article public
func (s *Service) Publish(ctx context.Context, id uuid.UUID) (*Response, error) {
	return s.transition(ctx, id, auditlog.ActionPublish, (*article.Article).Publish)
}

// Unpublish moves an article back to draft
func (s *Service) Unpublish(ctx context.Context, id uuid.UUID) (*Response, error) {
	return s.transition(ctx, id, auditlog.ActionUnpublish, (*article.Article).Unpublish)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, action auditlog.Action, apply func(*article.Article) error) (*Response, error) {
	a, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(a); err != nil {
		return nil, err
	}
	if err := s.articleRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, action, auditlog.EntityArticle, &a.ID, a.Title)
	return s.withWriter(ctx, a)
}

func (s *Service) requireWriter(ctx context.Context, id uuid.UUID) (*writer.Writer, error) {
	w, err := s.writerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, writer.ErrWriterNotFound) {
			return nil, ErrInvalidWriter
		}
		return nil, err
	}
	return w, nil
}

// uniqueSlug appends -2, -3, ... to base until it is free
func (s *Service) uniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := s.articleRepo.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

// Input contains the editable fields of an article
type Input struct {
	Title         string
	Excerpt       string
	Content       string
	CoverImageURL string
	WriterID      uuid.UUID
	Publish       bool
}

func (in Input) toDraft() article.Draft {
	return article.Draft{
		Title:         in.Title,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		CoverImageURL: in.CoverImageURL,
		WriterID:      in.WriterID,
	}
}

// ListFilter narrows the article list
type ListFilter struct {
	shared.ListQuery
	Status   string
	WriterID *uuid.UUID
}

// WriterSummary is the author block embedded in article responses
type WriterSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Dusun    string    `json:"dusun"`
	Position string    `json:"position,omitempty"`
	PhotoURL string    `json:"photo_url,omitempty"`
}

// Response is the API view of an article
type Response struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Excerpt       string         `json:"excerpt"`
	Content       string         `json:"content,omitempty"`
	CoverImageURL string         `json:"cover_image_url,omitempty"`
	Status        string         `json:"status"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
	ViewCount     int64          `json:"view_count"`
	Writer        *WriterSummary `json:"writer,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToResponse converts an article. w may be nil.
func ToResponse(a *article.Article, w *writer.Writer) Response {
	resp := Response{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		CoverImageURL: a.CoverImageURL,
		Status:        string(a.Status),
		PublishedAt:   a.PublishedAt,
		ViewCount:     a.ViewCount,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if w != nil {
		resp.Writer = &WriterSummary{
			ID:       w.ID,
			Name:     w.Name,
			Dusun:    string(w.Dusun),
			Position: w.Position,
			PhotoURL: w.PhotoURL,
		}
	}
	return resp
}
