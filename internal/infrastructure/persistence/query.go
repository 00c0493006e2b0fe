package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// paginate applies a whitelisted ORDER BY plus OFFSET/LIMIT
func paginate(query *gorm.DB, filter shared.Filter, allowed sortColumns, defaultField string) *gorm.DB {
	filter.Normalize()
	field := allowed.resolve(filter.OrderBy, defaultField)
	dir := sortDirection(filter.OrderDir)
	// id breaks ties so pages stay stable when the sort column repeats
	return query.
		Order(fmt.Sprintf("%s %s, id %s", field, dir, dir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}

// search adds a case-insensitive substring match over the given columns.
// LOWER/LIKE is used instead of ILIKE so the same query runs on sqlite.
func search(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col)
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// stringFilter returns a non-empty string filter value
func stringFilter(filter shared.Filter, key string) (string, bool) {
	v, ok := filter.Filters[key]
	if !ok {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func excludeID(query *gorm.DB, id *uuid.UUID) *gorm.DB {
	if id == nil {
		return query
	}
	return query.Where("id <> ?", *id)
}

// notFound maps gorm.ErrRecordNotFound to the given domain error
func notFound(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
