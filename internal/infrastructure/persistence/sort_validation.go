package persistence

import (
	"strings"
)

// Sort parameters come straight from query strings and are interpolated
// into ORDER BY clauses, so both pieces are validated against closed sets
// before they reach gorm.

// ValidateSortOrder normalizes a direction to ASC or DESC, defaulting to
// DESC for anything unrecognized.
func ValidateSortOrder(direction string) string {
	if strings.EqualFold(strings.TrimSpace(direction), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns the requested column only when it appears in
// the whitelist, otherwise the fallback. Matching is exact after trimming.
func ValidateSortField(field string, allowed map[string]bool, fallback string) string {
	field = strings.TrimSpace(field)
	if field == "" || !allowed[field] {
		return fallback
	}
	return field
}

func sortFields(columns ...string) map[string]bool {
	fields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, c := range columns {
		fields[c] = true
	}
	return fields
}

// UserSortFields lists the user columns exposed for sorting.
var UserSortFields = sortFields("username", "email", "display_name", "status", "last_login_at")
