package auditlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, l *auditlog.Log) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]auditlog.Log, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]auditlog.Log), args.Get(1).(int64), args.Error(2)
}

func TestService_Record(t *testing.T) {
	repo := new(MockLogRepository)
	svc := NewService(repo, zap.NewNop())

	actorID := uuid.New()
	ctx := auditlog.WithActor(context.Background(), auditlog.Actor{ID: actorID, Name: "Operator Desa", IP: "10.0.0.1"})
	entityID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *auditlog.Log) bool {
		return l.Action == auditlog.ActionCreate &&
			l.Entity == auditlog.EntityUMKM &&
			*l.EntityID == entityID &&
			*l.ActorID == actorID &&
			l.ActorName == "Operator Desa" &&
			l.IPAddress == "10.0.0.1"
	})).Return(nil)

	svc.Record(ctx, auditlog.ActionCreate, auditlog.EntityUMKM, &entityID, "Menambah UMKM Kopi Laiyolo")
	repo.AssertExpectations(t)
}

func TestService_Record_FailureIsOnlyLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := new(MockLogRepository)
	svc := NewService(repo, zap.New(core))

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	svc.Record(context.Background(), auditlog.ActionDelete, auditlog.EntityWriter, nil, "")

	svc.Record(context.Background(), auditlog.Action("approve"), auditlog.EntityWriter, nil, "")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "Failed to write audit log", logs.All()[0].Message)
	assert.Equal(t, "Invalid audit entry", logs.All()[1].Message)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestService_List(t *testing.T) {
	repo := new(MockLogRepository)
	svc := NewService(repo, zap.NewNop())
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	entry := auditlog.Log{ID: uuid.New(), Action: auditlog.ActionLogin, Entity: auditlog.EntityAdmin, ActorName: "Kepala Desa"}
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["action"] == "login" && f.Filters["from"] == from && f.OrderBy == "created_at" && f.PageSize == 20
	})).Return([]auditlog.Log{entry}, int64(1), nil)

	items, total, err := svc.List(context.Background(), ListFilter{Action: "login", From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Kepala Desa", items[0].ActorName)
	assert.Equal(t, "login", items[0].Action)
}

func TestService_List_Validation(t *testing.T) {
	svc := NewService(new(MockLogRepository), zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.List(ctx, ListFilter{ListQuery: shared.ListQuery{OrderBy: "ip_address"}})
	assert.ErrorIs(t, err, shared.ErrInvalidSortField)

	_, _, err = svc.List(ctx, ListFilter{Action: "approve"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_ACTION", de.Code)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, _, err = svc.List(ctx, ListFilter{From: &from, To: &to})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_DATE_RANGE", de.Code)
}
