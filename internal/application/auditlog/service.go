// Package auditlog records dashboard changes and serves the log viewer.
package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder appends audit entries. Implementations never fail the caller.
type Recorder interface {
	Record(ctx context.Context, action auditlog.Action, entity string, entityID *uuid.UUID, description string)
}

// Service writes and lists audit logs
type Service struct {
	repo   auditlog.LogRepository
	logger *zap.Logger
}

// NewService creates a new audit log Service
func NewService(repo auditlog.LogRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record stores an entry for the actor in ctx. Failures are logged only.
func (s *Service) Record(ctx context.Context, action auditlog.Action, entity string, entityID *uuid.UUID, description string) {
	entry, err := auditlog.NewLog(ctx, action, entity, entityID, description)
	if err != nil {
		s.logger.Warn("Invalid audit entry", zap.String("entity", entity), zap.Error(err))
		return
	}
	// The request may be cancelled right after the response is written
	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("Failed to write audit log",
			zap.String("action", string(action)),
			zap.String("entity", entity),
			zap.Error(err),
		)
	}
}

// List returns a page of audit logs, newest first by default
func (s *Service) List(ctx context.Context, filter ListFilter) ([]LogResponse, int64, error) {
	f, err := filter.ListQuery.ToFilter(sortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	if filter.Action != "" {
		action := auditlog.Action(filter.Action)
		if !action.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_ACTION", "Aksi log tidak valid")
		}
		f.Filters["action"] = string(action)
	}
	if filter.Entity != "" {
		f.Filters["entity"] = filter.Entity
	}
	if filter.ActorID != nil {
		f.Filters["actor_id"] = filter.ActorID.String()
	}
	if filter.From != nil {
		f.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		f.Filters["to"] = *filter.To
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, shared.NewDomainError("INVALID_DATE_RANGE", "Tanggal akhir tidak boleh sebelum tanggal awal")
	}

	logs, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LogResponse, len(logs))
	for i := range logs {
		out[i] = ToLogResponse(&logs[i])
	}
	return out, total, nil
}

var sortFields = []string{"created_at", "action", "entity", "actor_name"}

// ListFilter narrows the log list
type ListFilter struct {
	shared.ListQuery
	Action  string
	Entity  string
	ActorID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// LogResponse is the API view of a log entry
type LogResponse struct {
	ID          uuid.UUID  `json:"id"`
	ActorID     *uuid.UUID `json:"actor_id,omitempty"`
	ActorName   string     `json:"actor_name"`
	Action      string     `json:"action"`
	Entity      string     `json:"entity"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	Description string     `json:"description"`
	IPAddress   string     `json:"ip_address,omitempty"`
	UserAgent   string     `json:"user_agent,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToLogResponse converts a log entry
func ToLogResponse(l *auditlog.Log) LogResponse {
	return LogResponse{
		ID:          l.ID,
		ActorID:     l.ActorID,
		ActorName:   l.ActorName,
		Action:      string(l.Action),
		Entity:      l.Entity,
		EntityID:    l.EntityID,
		Description: l.Description,
		IPAddress:   l.IPAddress,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
	}
}

var _ Recorder = (*Service)(nil)
