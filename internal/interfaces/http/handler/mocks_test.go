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
	"github.com/stretchr/testify/mock"
)

// ptrOrNil returns args.Get(i) as *T, or nil when the mock returned nil
func ptrOrNil[T any](args mock.Arguments, i int) *T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*T)
}

func sliceOrNil[T any](args mock.Arguments, i int) []T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]T)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[identity.LoginResult](args, 0), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*identity.TokenResult, error) {
	args := m.Called(ctx, refreshToken)
	return ptrOrNil[identity.TokenResult](args, 0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identity.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, adminID uuid.UUID) (*identity.AdminResponse, error) {
	args := m.Called(ctx, adminID)
	return ptrOrNil[identity.AdminResponse](args, 0), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, input identity.ChangePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) List(ctx context.Context, filter identity.AdminListFilter) ([]identity.AdminResponse, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[identity.AdminResponse](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) GetByID(ctx context.Context, id uuid.UUID) (*identity.AdminResponse, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[identity.AdminResponse](args, 0), args.Error(1)
}

func (m *MockAdminService) Create(ctx context.Context, input identity.CreateAdminInput) (*identity.AdminResponse, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[identity.AdminResponse](args, 0), args.Error(1)
}

func (m *MockAdminService) Update(ctx context.Context, actorID, id uuid.UUID, input identity.UpdateAdminInput) (*identity.AdminResponse, error) {
	args := m.Called(ctx, actorID, id, input)
	return ptrOrNil[identity.AdminResponse](args, 0), args.Error(1)
}

func (m *MockAdminService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	return m.Called(ctx, actorID, id).Error(0)
}

type MockWriterService struct{ mock.Mock }

func (m *MockWriterService) List(ctx context.Context, filter writerapp.ListFilter) ([]writerapp.Response, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[writerapp.Response](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockWriterService) GetByID(ctx context.Context, id uuid.UUID) (*writerapp.Response, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[writerapp.Response](args, 0), args.Error(1)
}

func (m *MockWriterService) Create(ctx context.Context, input writerapp.Input) (*writerapp.Response, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[writerapp.Response](args, 0), args.Error(1)
}

func (m *MockWriterService) Update(ctx context.Context, id uuid.UUID, input writerapp.Input) (*writerapp.Response, error) {
	args := m.Called(ctx, id, input)
	return ptrOrNil[writerapp.Response](args, 0), args.Error(1)
}

func (m *MockWriterService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockArticleService struct{ mock.Mock }

func (m *MockArticleService) List(ctx context.Context, filter articleapp.ListFilter) ([]articleapp.Response, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[articleapp.Response](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleService) ListPublished(ctx context.Context, filter articleapp.ListFilter) ([]articleapp.Response, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[articleapp.Response](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleService) GetByID(ctx context.Context, id uuid.UUID) (*articleapp.Response, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[articleapp.Response](args, 0), args.Error(1)
}

func (m *MockArticleService) GetPublishedBySlug(ctx context.Context, slug string) (*articleapp.Response, error) {
	args := m.Called(ctx, slug)
	return ptrOrNil[articleapp.Response](args, 0), args.Error(1)
}

func (m *MockArticleService) Create(ctx context.Context, input articleapp.Input) (*articleapp.Response, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[articleapp.Response](args, 0), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, id uuid.UUID, input articleapp.Input) (*articleapp.Response, error) {
	args := m.Called(ctx, id, input)
	return ptrOrNil[articleapp.Response](args, 0), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockArticleService) Publish(ctx context.Context, id uuid.UUID) (*articleapp.Response, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[articleapp.Response](args, 0), args.Error(1)
}

func (m *MockArticleService) Unpublish(ctx context.Context, id uuid.UUID) (*articleapp.Response, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[articleapp.Response](args, 0), args.Error(1)
}

type MockUMKMService struct{ mock.Mock }

func (m *MockUMKMService) List(ctx context.Context, filter umkmapp.ListFilter) ([]umkmapp.Response, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[umkmapp.Response](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockUMKMService) GetByID(ctx context.Context, id uuid.UUID) (*umkmapp.Response, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[umkmapp.Response](args, 0), args.Error(1)
}

func (m *MockUMKMService) Create(ctx context.Context, input umkmapp.Input) (*umkmapp.Response, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[umkmapp.Response](args, 0), args.Error(1)
}

func (m *MockUMKMService) Update(ctx context.Context, id uuid.UUID, input umkmapp.Input) (*umkmapp.Response, error) {
	args := m.Called(ctx, id, input)
	return ptrOrNil[umkmapp.Response](args, 0), args.Error(1)
}

func (m *MockUMKMService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUMKMService) CountByDusun(ctx context.Context) ([]umkmapp.DusunCount, error) {
	args := m.Called(ctx)
	return sliceOrNil[umkmapp.DusunCount](args, 0), args.Error(1)
}

type MockTravelCategoryService struct{ mock.Mock }

func (m *MockTravelCategoryService) List(ctx context.Context, query shared.ListQuery) ([]travelapp.CategoryResponse, int64, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[travelapp.CategoryResponse](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTravelCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*travelapp.CategoryResponse, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[travelapp.CategoryResponse](args, 0), args.Error(1)
}

func (m *MockTravelCategoryService) Create(ctx context.Context, input travelapp.CategoryInput) (*travelapp.CategoryResponse, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[travelapp.CategoryResponse](args, 0), args.Error(1)
}

func (m *MockTravelCategoryService) Update(ctx context.Context, id uuid.UUID, input travelapp.CategoryInput) (*travelapp.CategoryResponse, error) {
	args := m.Called(ctx, id, input)
	return ptrOrNil[travelapp.CategoryResponse](args, 0), args.Error(1)
}

func (m *MockTravelCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTravelService struct{ mock.Mock }

func (m *MockTravelService) List(ctx context.Context, filter travelapp.ListFilter) ([]travelapp.Response, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[travelapp.Response](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockTravelService) GetByID(ctx context.Context, id uuid.UUID) (*travelapp.Response, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[travelapp.Response](args, 0), args.Error(1)
}

func (m *MockTravelService) Create(ctx context.Context, input travelapp.Input) (*travelapp.Response, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[travelapp.Response](args, 0), args.Error(1)
}

func (m *MockTravelService) Update(ctx context.Context, id uuid.UUID, input travelapp.Input) (*travelapp.Response, error) {
	args := m.Called(ctx, id, input)
	return ptrOrNil[travelapp.Response](args, 0), args.Error(1)
}

func (m *MockTravelService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAuditLogService struct{ mock.Mock }

func (m *MockAuditLogService) List(ctx context.Context, filter auditapp.ListFilter) ([]auditapp.LogResponse, int64, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[auditapp.LogResponse](args, 0), args.Get(1).(int64), args.Error(2)
}

type MockDemographyService struct{ mock.Mock }

func (m *MockDemographyService) Monografis(ctx context.Context) (*demographyapp.MonografisResponse, error) {
	args := m.Called(ctx)
	return ptrOrNil[demographyapp.MonografisResponse](args, 0), args.Error(1)
}

func (m *MockDemographyService) Infografis(ctx context.Context) (*demography.Infografis, error) {
	args := m.Called(ctx)
	return ptrOrNil[demography.Infografis](args, 0), args.Error(1)
}

func (m *MockDemographyService) MonografisPDF(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return sliceOrNil[byte](args, 0), args.Error(1)
}

func (m *MockDemographyService) GetProfile(ctx context.Context) (*demographyapp.ProfileResponse, error) {
	args := m.Called(ctx)
	return ptrOrNil[demographyapp.ProfileResponse](args, 0), args.Error(1)
}

func (m *MockDemographyService) UpdateProfile(ctx context.Context, input demography.ProfileDetails) (*demographyapp.ProfileResponse, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[demographyapp.ProfileResponse](args, 0), args.Error(1)
}

func (m *MockDemographyService) ListStats(ctx context.Context, filter demographyapp.StatFilter) ([]demographyapp.StatResponse, error) {
	args := m.Called(ctx, filter)
	return sliceOrNil[demographyapp.StatResponse](args, 0), args.Error(1)
}

func (m *MockDemographyService) UpsertStat(ctx context.Context, input demographyapp.StatInput) (*demographyapp.StatResponse, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[demographyapp.StatResponse](args, 0), args.Error(1)
}

func (m *MockDemographyService) DeleteStat(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDemographyService) UpsertDusunSummary(ctx context.Context, dusun string, input demographyapp.DusunSummaryInput) (*demography.DusunRow, error) {
	args := m.Called(ctx, dusun, input)
	return ptrOrNil[demography.DusunRow](args, 0), args.Error(1)
}

type MockStuntingService struct{ mock.Mock }

func (m *MockStuntingService) Predict(ctx context.Context, input stuntingapp.PredictInput) (*stuntingapp.PredictResponse, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[stuntingapp.PredictResponse](args, 0), args.Error(1)
}

type MockMediaService struct{ mock.Mock }

func (m *MockMediaService) MaxUploadSize() int64 {
	return m.Called().Get(0).(int64)
}

func (m *MockMediaService) Upload(ctx context.Context, input media.UploadInput) (*media.UploadResult, error) {
	args := m.Called(ctx, input)
	return ptrOrNil[media.UploadResult](args, 0), args.Error(1)
}
