package persistence

import (
	"context"
	"time"

	"github.com/laiyolobaru/backend/internal/domain/auditlog"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLogRepository implements auditlog.LogRepository using GORM
type GormLogRepository struct {
	db *gorm.DB
}

// NewGormLogRepository creates a new GormLogRepository
func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// Create appends a log entry
func (r *GormLogRepository) Create(ctx context.Context, l *auditlog.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// FindAll returns a page of log entries, newest first by default
func (r *GormLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]auditlog.Log, int64, error) {
	query := r.db.WithContext(ctx).Model(&auditlog.Log{})
	query = search(query, filter.Search, "actor_name", "description")
	if action, ok := stringFilter(filter, "action"); ok {
		query = query.Where("action = ?", action)
	}
	if entity, ok := stringFilter(filter, "entity"); ok {
		query = query.Where("entity = ?", entity)
	}
	if actorID, ok := stringFilter(filter, "actor_id"); ok {
		query = query.Where("actor_id = ?", actorID)
	}
	if from, ok := filter.Filters["from"].(time.Time); ok {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := filter.Filters["to"].(time.Time); ok {
		query = query.Where("created_at <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []auditlog.Log
	if err := paginate(query, filter, logSortColumns, "created_at").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Ensure GormLogRepository implements LogRepository
var _ auditlog.LogRepository = (*GormLogRepository)(nil)
