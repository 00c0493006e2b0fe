// Package travel manages tourism destinations and their categories.
package travel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/travel"
	"github.com/shopspring/decimal"
)

var (
	sortFields = []string{"created_at", "updated_at", "name", "dusun", "ticket_price"}

	ErrInvalidCategory = shared.NewDomainError("INVALID_CATEGORY", "Kategori wisata yang dipilih tidak ditemukan")
)

// Service handles destination operations
type Service struct {
	travelRepo   travel.TravelRepository
	categoryRepo travel.CategoryRepository
	audit        auditapp.Recorder
}

// NewService creates a new destination Service
func NewService(travelRepo travel.TravelRepository, categoryRepo travel.CategoryRepository, audit auditapp.Recorder) *Service {
	return &Service{travelRepo: travelRepo, categoryRepo: categoryRepo, audit: audit}
}

// List returns a page of destinations with their category names
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
	if filter.CategoryID != nil {
		f.Filters["category_id"] = filter.CategoryID.String()
	}

	items, total, err := s.travelRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	categories, err := s.categoriesOf(ctx, items)
	if err != nil {
		return nil, 0, err
	}
	out := make([]Response, len(items))
	for i := range items {
		out[i] = ToResponse(&items[i], categories[items[i].CategoryID])
	}
	return out, total, nil
}

func (s *Service) categoriesOf(ctx context.Context, items []travel.Travel) (map[uuid.UUID]*travel.Category, error) {
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, t := range items {
		if !seen[t.CategoryID] {
			seen[t.CategoryID] = true
			ids = append(ids, t.CategoryID)
		}
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*travel.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	return byID, nil
}

// GetByID returns one destination
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	t, err := s.travelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.categoryRepo.FindByID(ctx, t.CategoryID)
	if err != nil && !errors.Is(err, travel.ErrCategoryNotFound) {
		return nil, err
	}
	resp := ToResponse(t, c)
	return &resp, nil
}

// Create adds a destination. Names are unique within a dusun.
func (s *Service) Create(ctx context.Context, input Input) (*Response, error) {
	t, err := travel.NewTravel(input.toDetails())
	if err != nil {
		return nil, err
	}
	c, err := s.requireCategory(ctx, t.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, t, nil); err != nil {
		return nil, err
	}
	if err := s.travelRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionCreate, auditlog.EntityTravel, &t.ID, fmt.Sprintf("Menambah destinasi wisata %s", t.Name))
	resp := ToResponse(t, c)
	return &resp, nil
}

// Update edits a destination
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*Response, error) {
	t, err := s.travelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Update(input.toDetails()); err != nil {
		return nil, err
	}
	c, err := s.requireCategory(ctx, t.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, t, &t.ID); err != nil {
		return nil, err
	}
	if err := s.travelRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityTravel, &t.ID, fmt.Sprintf("Mengubah destinasi wisata %s", t.Name))
	resp := ToResponse(t, c)
	return &resp, nil
}

// Delete removes a destination
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.travelRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.travelRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityTravel, &id, fmt.Sprintf("Menghapus destinasi wisata %s", t.Name))
	return nil
}

func (s *Service) requireCategory(ctx context.Context, id uuid.UUID) (*travel.Category, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, travel.ErrCategoryNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) ensureUnique(ctx context.Context, t *travel.Travel, excludeID *uuid.UUID) error {
	exists, err := s.travelRepo.ExistsByNameInDusun(ctx, t.Name, t.Dusun, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return travel.ErrTravelAlreadyExists
	}
	return nil
}

// Input contains the editable fields of a destination
type Input struct {
	Name         string
	CategoryID   uuid.UUID
	Dusun        string
	Description  string
	Address      string
	ImageURL     string
	TicketPrice  decimal.Decimal
	OpeningHours string
	Facilities   []string
	Latitude     *float64
	Longitude    *float64
}

func (in Input) toDetails() travel.Details {
	return travel.Details{
		Name:         in.Name,
		CategoryID:   in.CategoryID,
		Dusun:        shared.NormalizeDusun(in.Dusun),
		Description:  in.Description,
		Address:      in.Address,
		ImageURL:     in.ImageURL,
		TicketPrice:  in.TicketPrice,
		OpeningHours: in.OpeningHours,
		Facilities:   in.Facilities,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	}
}

// ListFilter narrows the destination list
type ListFilter struct {
	shared.ListQuery
	Dusun      string
	CategoryID *uuid.UUID
}

// CategorySummary is the category block embedded in destination responses
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Response is the API view of a destination
type Response struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Category     *CategorySummary `json:"category,omitempty"`
	CategoryID   uuid.UUID        `json:"category_id"`
	Dusun        string           `json:"dusun"`
	DusunLabel   string           `json:"dusun_label"`
	Description  string           `json:"description,omitempty"`
	Address      string           `json:"address,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	TicketPrice  decimal.Decimal  `json:"ticket_price"`
	IsFree       bool             `json:"is_free"`
	OpeningHours string           `json:"opening_hours,omitempty"`
	Facilities   []string         `json:"facilities"`
	Latitude     *float64         `json:"latitude,omitempty"`
	Longitude    *float64         `json:"longitude,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToResponse converts a destination. c may be nil.
func ToResponse(t *travel.Travel, c *travel.Category) Response {
	facilities := []string(t.Facilities)
	if facilities == nil {
		facilities = []string{}
	}
	resp := Response{
		ID:           t.ID,
		Name:         t.Name,
		CategoryID:   t.CategoryID,
		Dusun:        string(t.Dusun),
		DusunLabel:   t.Dusun.Label(),
		Description:  t.Description,
		Address:      t.Address,
		ImageURL:     t.ImageURL,
		TicketPrice:  t.TicketPrice,
		IsFree:       t.IsFree(),
		OpeningHours: t.OpeningHours,
		Facilities:   facilities,
		Latitude:     t.Latitude,
		Longitude:    t.Longitude,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if c != nil {
		resp.Category = &CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return resp
}
