package travel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/travel"
)

var categorySortFields = []string{"created_at", "updated_at", "name"}

// CategoryService handles travel category operations
type CategoryService struct {
	categoryRepo travel.CategoryRepository
	travelRepo   travel.TravelRepository
	audit        auditapp.Recorder
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo travel.CategoryRepository, travelRepo travel.TravelRepository, audit auditapp.Recorder) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, travelRepo: travelRepo, audit: audit}
}

// List returns a page of categories, sorted by name by default
func (s *CategoryService) List(ctx context.Context, query shared.ListQuery) ([]CategoryResponse, int64, error) {
	if query.OrderBy == "" {
		query.OrderBy = "name"
		query.OrderDir = "asc"
	}
	f, err := query.ToFilter(categorySortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	categories, total, err := s.categoryRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out, total, nil
}

// GetByID returns one category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// Create adds a category with a unique name
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*CategoryResponse, error) {
	c, err := travel.NewCategory(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, c.Name, nil); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionCreate, auditlog.EntityTravelCategory, &c.ID, fmt.Sprintf("Menambah kategori wisata %s", c.Name))
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, c.Name, &c.ID); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityTravelCategory, &c.ID, fmt.Sprintf("Mengubah kategori wisata %s", c.Name))
	resp := ToCategoryResponse(c)
	return &resp, nil
}

// Delete removes a category that no destination uses
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	inUse, err := s.travelRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return travel.ErrCategoryInUse
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityTravelCategory, &id, fmt.Sprintf("Menghapus kategori wisata %s", c.Name))
	return nil
}

func (s *CategoryService) ensureUnique(ctx context.Context, name string, excludeID *uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return travel.ErrCategoryAlreadyExists
	}
	return nil
}

// CategoryInput contains the editable fields of a category
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryResponse is the API view of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category
func ToCategoryResponse(c *travel.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
