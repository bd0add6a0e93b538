package api

import "strings" // String manipulation

// Sort column allow-lists. Identifiers cannot be bound as SQL parameters, so
// sortable fields map through these fixed tables; anything else falls back to
// the default field ascending.
var userSortColumns = map[string]string{
	"name":         "u.name",                            // User name
	"email":        "u.email",                           // User email
	"address":      "u.address",                         // User address
	"role":         "r.name",                            // Role name via join
	"store_rating": "COALESCE(sr.avg_store_rating, 0)",  // Aggregated owner rating
}

var storeSortColumns = map[string]string{
	"name":    "s.name",    // Store name
	"email":   "s.email",   // Store email
	"address": "s.address", // Store address
}

// orderClause resolves the requested sort field and direction against the
// allow-list and appends a deterministic id tie-break. Unknown fields or
// directions silently fall back to the default field ascending.
func orderClause(allowed map[string]string, field, dir, defaultField, tieBreak string) string {
	column, ok := allowed[field] // Look up the requested field
	if !ok {
		column = allowed[defaultField] // Fall back to the default column
		dir = "asc"                    // Fallback always sorts ascending
	}
	direction := "ASC" // Default direction
	if strings.ToLower(dir) == "desc" {
		direction = "DESC" // Only the two known directions are emitted
	}
	return column + " " + direction + ", " + tieBreak + " ASC"
}
