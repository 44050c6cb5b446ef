package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SQLDialect represents a SQL dialect.
type SQLDialect string

const (
	// PostgreSQL dialect.
	PostgreSQL SQLDialect = "postgres"
	// MySQL dialect.
	MySQL SQLDialect = "mysql"
	// SQLite dialect.
	SQLite SQLDialect = "sqlite"
)

// ParseDialect maps a provider name to a dialect.
func ParseDialect(name string) (SQLDialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql":
		return PostgreSQL, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported dialect: %q", name)
}

// Quote quotes an identifier. Embedded quote characters are doubled.
func (d SQLDialect) Quote(ident string) string {
	q := "`"
	if d == PostgreSQL {
		q = `"`
	}
	return q + strings.ReplaceAll(ident, q, q+q) + q
}

// Placeholder returns the placeholder of the n-th (1-based) parameter.
func (d SQLDialect) Placeholder(n int) string {
	if d == PostgreSQL {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// AllRows is the LIMIT literal meaning "no limit" when only an offset is set.
func (d SQLDialect) AllRows() string {
	switch d {
	case PostgreSQL:
		return "ALL"
	case MySQL:
		return "18446744073709551615"
	default:
		return "-1"
	}
}
