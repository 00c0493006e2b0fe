// Package umkm manages the village business directory.
package umkm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/laiyolobaru/backend/internal/domain/umkm"
	"github.com/shopspring/decimal"
)

var sortFields = []string{"created_at", "updated_at", "name", "owner_name", "dusun", "category"}

// Service handles UMKM operations
type Service struct {
	repo  umkm.UMKMRepository
	audit auditapp.Recorder
}

// NewService creates a new UMKM Service
func NewService(repo umkm.UMKMRepository, audit auditapp.Recorder) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns a page of UMKM. It serves both the dashboard and the public directory.
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
	if filter.Category != "" {
		if !umkm.Category(filter.Category).IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_CATEGORY", "Kategori UMKM tidak valid")
		}
		f.Filters["category"] = filter.Category
	}

	items, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]Response, len(items))
	for i := range items {
		out[i] = ToResponse(&items[i])
	}
	return out, total, nil
}

// GetByID returns one UMKM
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(u)
	return &resp, nil
}

// Create adds an UMKM. Names are unique within a dusun.
func (s *Service) Create(ctx context.Context, input Input) (*Response, error) {
	u, err := umkm.NewUMKM(input.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, u, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionCreate, auditlog.EntityUMKM, &u.ID, fmt.Sprintf("Menambah UMKM %s", u.Name))
	resp := ToResponse(u)
	return &resp, nil
}

// Update edits an UMKM
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*Response, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.Update(input.toDetails()); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, u, &u.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditlog.ActionUpdate, auditlog.EntityUMKM, &u.ID, fmt.Sprintf("Mengubah UMKM %s", u.Name))
	resp := ToResponse(u)
	return &resp, nil
}

// Delete removes an UMKM
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, auditlog.ActionDelete, auditlog.EntityUMKM, &id, fmt.Sprintf("Menghapus UMKM %s", u.Name))
	return nil
}

// CountByDusun returns the number of UMKM in every dusun, including empty ones
func (s *Service) CountByDusun(ctx context.Context) ([]DusunCount, error) {
	counts, err := s.repo.CountByDusun(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DusunCount, 0, len(shared.AllDusun()))
	for _, d := range shared.AllDusun() {
		out = append(out, DusunCount{Dusun: string(d), Label: d.Label(), Total: counts[d]})
	}
	return out, nil
}

func (s *Service) ensureUnique(ctx context.Context, u *umkm.UMKM, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByNameInDusun(ctx, u.Name, u.Dusun, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return umkm.ErrUMKMAlreadyExists
	}
	return nil
}

// Input contains the editable fields of an UMKM
type Input struct {
	Name        string
	OwnerName   string
	Dusun       string
	Category    string
	Description string
	Address     string
	Phone       string
	ImageURL    string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	Latitude    *float64
	Longitude   *float64
}

func (in Input) toDetails() umkm.Details {
	return umkm.Details{
		Name:        in.Name,
		OwnerName:   in.OwnerName,
		Dusun:       shared.NormalizeDusun(in.Dusun),
		Category:    umkm.Category(in.Category),
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
		ImageURL:    in.ImageURL,
		PriceMin:    in.PriceMin,
		PriceMax:    in.PriceMax,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
}

// ListFilter narrows the UMKM list
type ListFilter struct {
	shared.ListQuery
	Dusun    string
	Category string
}

// DusunCount is the number of entries in one dusun
type DusunCount struct {
	Dusun string `json:"dusun"`
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// Response is the API view of an UMKM
type Response struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	OwnerName   string           `json:"owner_name"`
	Dusun       string           `json:"dusun"`
	DusunLabel  string           `json:"dusun_label"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	Address     string           `json:"address,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	PriceMin    *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax    *decimal.Decimal `json:"price_max,omitempty"`
	Latitude    *float64         `json:"latitude,omitempty"`
	Longitude   *float64         `json:"longitude,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToResponse converts an UMKM
func ToResponse(u *umkm.UMKM) Response {
	return Response{
		ID:          u.ID,
		Name:        u.Name,
		OwnerName:   u.OwnerName,
		Dusun:       string(u.Dusun),
		DusunLabel:  u.Dusun.Label(),
		Category:    string(u.Category),
		Description: u.Description,
		Address:     u.Address,
		Phone:       u.Phone,
		ImageURL:    u.ImageURL,
		PriceMin:    u.PriceMin,
		PriceMax:    u.PriceMax,
		Latitude:    u.Latitude,
		Longitude:   u.Longitude,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
