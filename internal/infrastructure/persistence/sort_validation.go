package persistence

import "strings"

// sortColumns is the set of columns a list query may be ordered by. Anything
// outside the set falls back to a default so user input never reaches ORDER BY.
type sortColumns map[string]struct{}

func columns(names ...string) sortColumns {
	set := make(sortColumns, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// resolve returns field when it is in the set, otherwise fallback
func (s sortColumns) resolve(field, fallback string) string {
	field = strings.TrimSpace(field)
	if _, ok := s[field]; ok {
		return field
	}
	return fallback
}

// sortDirection normalizes dir to ASC or DESC. DESC is the default.
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

var (
	adminSortColumns          = columns("created_at", "updated_at", "name", "username", "email", "role", "last_login_at")
	writerSortColumns         = columns("created_at", "updated_at", "name", "dusun", "position")
	articleSortColumns        = columns("created_at", "updated_at", "title", "status", "published_at", "view_count")
	umkmSortColumns           = columns("created_at", "updated_at", "name", "owner_name", "dusun", "category")
	travelCategorySortColumns = columns("created_at", "updated_at", "name")
	travelSortColumns         = columns("created_at", "updated_at", "name", "dusun", "ticket_price")
	logSortColumns            = columns("created_at", "action", "entity", "actor_name")
)
