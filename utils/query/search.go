package query

import (
	"strings"

	"gorm.io/gorm"
)

// Clause builds a case-insensitive substring condition OR-ed across fields.
// Returns an empty clause for an empty term.
func Clause(term string, fields ...string) (string, []interface{}) {
	if term == "" || len(fields) == 0 {
		return "", nil
	}

	pattern := "%" + strings.ToLower(term) + "%"
	conditions := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, "LOWER("+field+") LIKE ?")
		args = append(args, pattern)
	}
	return strings.Join(conditions, " OR "), args
}

// Search applies the substring condition to the query. A blank term leaves
// the query untouched.
func Search(q *gorm.DB, term string, fields ...string) *gorm.DB {
	clause, args := Clause(term, fields...)
	if clause == "" {
		return q
	}
	return q.Where(clause, args...)
}
