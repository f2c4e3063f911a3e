package queryHelper

import (
	"math"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE/ILIKE pattern matching any value that contains
// fragment literally. Wildcards inside fragment are escaped with a backslash,
// which is PostgreSQL's default LIKE escape character.
func ContainsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}

// PageOffset returns the row offset of a zero-based page. Offsets past
// math.MaxInt are clamped, which still selects no rows.
func PageOffset(page, size int) int {
	if page < 0 || size < 1 {
		return 0
	}
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}
