package auditlog

import (
	"context"

	"github.com/laiyolobaru/backend/internal/domain/shared"
)

// LogRepository defines the interface for audit log persistence.
// Logs are never updated or deleted.
type LogRepository interface {
	Create(ctx context.Context, l *Log) error
	// FindAll supports search on actor name and description, and filters
	// "action", "entity", "actor_id", "from" and "to" (time.Time)
	FindAll(ctx context.Context, filter shared.Filter) ([]Log, int64, error)
}
