// Package auditlog records who changed what on the dashboard.
package auditlog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// Action is the kind of change recorded
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionLogin     Action = "login"
	ActionLogout    Action = "logout"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
)

// IsValid reports whether a is a known action
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout, ActionPublish, ActionUnpublish:
		return true
	}
	return false
}

// Entity names used in logs
const (
	EntityAdmin          = "admin"
	EntityWriter         = "writer"
	EntityArticle        = "article"
	EntityUMKM           = "umkm"
	EntityTravel         = "travel"
	EntityTravelCategory = "travel_category"
	EntityVillageProfile = "village_profile"
	EntityPopulationStat = "population_stat"
	EntityDusunSummary   = "dusun_summary"
)

// Log is an append-only audit record.
type Log struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID     *uuid.UUID `gorm:"type:uuid;index"`
	ActorName   string     `gorm:"type:varchar(100)"`
	Action      Action     `gorm:"type:varchar(20);not null;index"`
	Entity      string     `gorm:"type:varchar(50);not null;index"`
	EntityID    *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"type:text"`
	IPAddress   string     `gorm:"type:varchar(45)"`
	UserAgent   string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "logs"
}

// NewLog builds a log entry for the actor found in ctx.
func NewLog(ctx context.Context, action Action, entity string, entityID *uuid.UUID, description string) (*Log, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Aksi log tidak valid")
	}
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entitas log wajib diisi")
	}

	l := &Log{
		ID:          uuid.New(),
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if actor, ok := ActorFromContext(ctx); ok {
		if actor.ID != uuid.Nil {
			id := actor.ID
			l.ActorID = &id
		}
		l.ActorName = actor.Name
		l.IPAddress = actor.IP
		l.UserAgent = truncate(actor.UserAgent, 255)
	}
	return l, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
