package handler

import (
	"context"

	"github.com/google/uuid"
	articleapp "github.com/laiyolobaru/backend/internal/application/article"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	demographyapp "github.com/laiyolobaru/backend/internal/application/demography"
	"github.com/laiyolobaru/backend/internal/application/identity"
	"github.com/laiyolobaru/backend/internal/application/media"
	stuntingapp "github.com/laiyolobaru/backend/internal/application/stunting"
	travelapp "github.com/laiyolobaru/backend/internal/application/travel"
	umkmapp "github.com/laiyolobaru/backend/internal/application/umkm"
	writerapp "github.com/laiyolobaru/backend/internal/application/writer"
	"github.com/laiyolobaru/backend/internal/domain/demography"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// The handlers depend on these narrow views of the application services.

// AuthService is implemented by identity.AuthService
type AuthService interface {
	Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*identity.TokenResult, error)
	Logout(ctx context.Context, input identity.LogoutInput) error
	Me(ctx context.Context, adminID uuid.UUID) (*identity.AdminResponse, error)
	ChangePassword(ctx context.Context, input identity.ChangePasswordInput) error
}

// AdminService is implemented by identity.AdminService
type AdminService interface {
	List(ctx context.Context, filter identity.AdminListFilter) ([]identity.AdminResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identity.AdminResponse, error)
	Create(ctx context.Context, input identity.CreateAdminInput) (*identity.AdminResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input identity.UpdateAdminInput) (*identity.AdminResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

// WriterService is implemented by writer.Service
type WriterService interface {
	List(ctx context.Context, filter writerapp.ListFilter) ([]writerapp.Response, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*writerapp.Response, error)
	Create(ctx context.Context, input writerapp.Input) (*writerapp.Response, error)
	Update(ctx context.Context, id uuid.UUID, input writerapp.Input) (*writerapp.Response, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ArticleService is implemented by article.Service
type ArticleService interface {
	List(ctx context.Context, filter articleapp.ListFilter) ([]articleapp.Response, int64, error)
	ListPublished(ctx context.Context, filter articleapp.ListFilter) ([]articleapp.Response, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*articleapp.Response, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*articleapp.Response, error)
	Create(ctx context.Context, input articleapp.Input) (*articleapp.Response, error)
	Update(ctx context.Context, id uuid.UUID, input articleapp.Input) (*articleapp.Response, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Publish(ctx context.Context, id uuid.UUID) (*articleapp.Response, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*articleapp.Response, error)
}

// UMKMService is implemented by umkm.Service
type UMKMService interface {
	List(ctx context.Context, filter umkmapp.ListFilter) ([]umkmapp.Response, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*umkmapp.Response, error)
	Create(ctx context.Context, input umkmapp.Input) (*umkmapp.Response, error)
	Update(ctx context.Context, id uuid.UUID, input umkmapp.Input) (*umkmapp.Response, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByDusun(ctx context.Context) ([]umkmapp.DusunCount, error)
}

// TravelCategoryService is implemented by travel.CategoryService
type TravelCategoryService interface {
	List(ctx context.Context, query shared.ListQuery) ([]travelapp.CategoryResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*travelapp.CategoryResponse, error)
	Create(ctx context.Context, input travelapp.CategoryInput) (*travelapp.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, input travelapp.CategoryInput) (*travelapp.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TravelService is implemented by travel.Service
type TravelService interface {
	List(ctx context.Context, filter travelapp.ListFilter) ([]travelapp.Response, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*travelapp.Response, error)
	Create(ctx context.Context, input travelapp.Input) (*travelapp.Response, error)
	Update(ctx context.Context, id uuid.UUID, input travelapp.Input) (*travelapp.Response, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditLogService is implemented by auditlog.Service
type AuditLogService interface {
	List(ctx context.Context, filter auditapp.ListFilter) ([]auditapp.LogResponse, int64, error)
}

// DemographyService is implemented by demographyapp.Service
type DemographyService interface {
	Monografis(ctx context.Context) (*demographyapp.MonografisResponse, error)
	Infografis(ctx context.Context) (*demography.Infografis, error)
	MonografisPDF(ctx context.Context) ([]byte, error)
	GetProfile(ctx context.Context) (*demographyapp.ProfileResponse, error)
	UpdateProfile(ctx context.Context, input demography.ProfileDetails) (*demographyapp.ProfileResponse, error)
	ListStats(ctx context.Context, filter demographyapp.StatFilter) ([]demographyapp.StatResponse, error)
	UpsertStat(ctx context.Context, input demographyapp.StatInput) (*demographyapp.StatResponse, error)
	DeleteStat(ctx context.Context, id uuid.UUID) error
	UpsertDusunSummary(ctx context.Context, dusun string, input demographyapp.DusunSummaryInput) (*demography.DusunRow, error)
}

// StuntingService is implemented by stunting.Service
type StuntingService interface {
	Predict(ctx context.Context, input stuntingapp.PredictInput) (*stuntingapp.PredictResponse, error)
}

// MediaService is implemented by media.Service
type MediaService interface {
	MaxUploadSize() int64
	Upload(ctx context.Context, input media.UploadInput) (*media.UploadResult, error)
}

var (
	_ AuthService           = (*identity.AuthService)(nil)
	_ AdminService          = (*identity.AdminService)(nil)
	_ WriterService         = (*writerapp.Service)(nil)
	_ ArticleService        = (*articleapp.Service)(nil)
	_ UMKMService           = (*umkmapp.Service)(nil)
	_ TravelCategoryService = (*travelapp.CategoryService)(nil)
	_ TravelService         = (*travelapp.Service)(nil)
	_ AuditLogService       = (*auditapp.Service)(nil)
	_ DemographyService     = (*demographyapp.Service)(nil)
	_ StuntingService       = (*stuntingapp.Service)(nil)
	_ MediaService          = (*media.Service)(nil)
)
