package telemetry

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormContentStats reads content counts straight from the database
type GormContentStats struct {
	db *gorm.DB
}

// NewGormContentStats creates a GormContentStats
func NewGormContentStats(db *gorm.DB) *GormContentStats {
	return &GormContentStats{db: db}
}

type groupCount struct {
	Label string
	Total int64
}

func (s *GormContentStats) countBy(ctx context.Context, table, column string) (map[string]int64, error) {
	var rows []groupCount
	err := s.db.WithContext(ctx).
		Table(table).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count %s by %s: %w", table, column, err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Label] = r.Total
	}
	return out, nil
}

// ContentSnapshot implements ContentStatsProvider
func (s *GormContentStats) ContentSnapshot(ctx context.Context) (*ContentSnapshot, error) {
	articles, err := s.countBy(ctx, "articles", "status")
	if err != nil {
		return nil, err
	}
	umkm, err := s.countBy(ctx, "umkm", "dusun")
	if err != nil {
		return nil, err
	}
	travels, err := s.countBy(ctx, "travels", "dusun")
	if err != nil {
		return nil, err
	}
	return &ContentSnapshot{
		ArticlesByStatus: articles,
		UMKMByDusun:      umkm,
		TravelsByDusun:   travels,
	}, nil
}

var _ ContentStatsProvider = (*GormContentStats)(nil)
