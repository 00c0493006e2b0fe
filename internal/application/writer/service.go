// Package writer manages the authors credited on articles.
package writer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/article"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/writer"
)

var sortFields = []string{"created_at", "updated_at", "name", "dusun", "position"}

// Service handles writer operations
type Service struct {
	writerRepo  writer.WriterRepository
	articleRepo article.ArticleRepository
	audit       auditapp.Recorder
}

// NewService creates a new writer Service
func NewService(writerRepo writer.WriterRepository, articleRepo article.ArticleRepository, audit auditapp.Recorder) *Service {
	return &Service{writerRepo: writerRepo, articleRepo: articleRepo, audit: audit}
}

// List returns a page of writers
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Response, int64, error) {
	f, err := filter.ListQuery.ToFilter(sortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	if filter.Dusun != "" {
		d, err := shared.ParseDusun(filter.Dusun)
		if err != nil {
			return nil, 0, err
		}
		f.Filters["dusun"] = string(d)
	}

	writers, total, err := s.writerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]Response, len(writers))
	for i := range writers {
		out[i] = ToResponse(&writers[i])
	}
	return out, total, nil
}

// GetByID returns one writer
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	w, err := s.writerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(w)
	return &resp, nil
}

// Create adds a writer. Names are unique within a dusun.
func (s *Service) Create(ctx context.Context, input Input) (*Response, error) {
	w, err := writer.NewWriter(input.toProfile())
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, w, nil); err != nil {
		return nil, err
	}
	if err := s.writerRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionCreate, auditlog.EntityWriter, &w.ID, fmt.Sprintf("Menambah penulis %s", w.Name))
	resp := ToResponse(w)
	return &resp, nil
}

// Update edits a writer
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*Response, error) {
	w, err := s.writerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Update(input.toProfile()); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, w, &w.ID); err != nil {
		return nil, err
	}
	if err := s.writerRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityWriter, &w.ID, fmt.Sprintf("Mengubah penulis %s", w.Name))
	resp := ToResponse(w)
	return &resp, nil
}

// Delete removes a writer that has no articles
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	w, err := s.writerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.articleRepo.CountByWriter(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return writer.ErrWriterHasArticles
	}
	if err := s.writerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityWriter, &id, fmt.Sprintf("Menghapus penulis %s", w.Name))
	return nil
}

func (s *Service) ensureUnique(ctx context.Context, w *writer.Writer, excludeID *uuid.UUID) error {
	exists, err := s.writerRepo.ExistsByNameInDusun(ctx, w.Name, w.Dusun, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return writer.ErrWriterAlreadyExists
	}
	return nil
}

// Input contains the editable fields of a writer
type Input struct {
	Name     string
	Dusun    string
	Position string
	Phone    string
	Bio      string
	PhotoURL string
}

func (in Input) toProfile() writer.Profile {
	return writer.Profile{
		Name:     in.Name,
		Dusun:    shared.NormalizeDusun(in.Dusun),
		Position: in.Position,
		Phone:    in.Phone,
		Bio:      in.Bio,
		PhotoURL: in.PhotoURL,
	}
}

// ListFilter narrows the writer list
type ListFilter struct {
	shared.ListQuery
	Dusun string
}

// Response is the API view of a writer
type Response struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Dusun      string    `json:"dusun"`
	DusunLabel string    `json:"dusun_label"`
	Position   string    `json:"position"`
	Phone      string    `json:"phone,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToResponse converts a writer
func ToResponse(w *writer.Writer) Response {
	return Response{
		ID:         w.ID,
		Name:       w.Name,
		Dusun:      string(w.Dusun),
		DusunLabel: w.Dusun.Label(),
		Position:   w.Position,
		Phone:      w.Phone,
		Bio:        w.Bio,
		PhotoURL:   w.PhotoURL,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
