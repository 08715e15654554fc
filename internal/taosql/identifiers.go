// Package taosql builds the deterministic SQL templates used by the
// primitive tools. All identifiers and literals pass through the validators
// here before substitution, a second injection defense independent of the
// policy validator's keyword check.
package taosql

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

// ValidIdentifier reports whether s is a well-formed single-part TDengine
// identifier: letters, digits and underscores, not starting with a digit.
func ValidIdentifier(s string) bool {
	if s == "" || len(s) > 192 {
		return false
	}
	for i, ch := range s {
		switch {
		case unicode.IsLetter(ch) || ch == '_':
		case unicode.IsDigit(ch):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Identifier validates s and returns it unchanged, or a ValidationRejected
// error naming the argument that failed.
func Identifier(arg, s string) (string, error) {
	if !ValidIdentifier(s) {
		return "", database.NewError(database.KindValidationRejected,
			"%s %q is not a valid identifier", arg, s)
	}
	return s, nil
}

// QualifiedTable validates db and table separately and joins them as
// db.table. An empty db yields the bare table name.
func QualifiedTable(db, table string) (string, error) {
	if _, err := Identifier("table name", table); err != nil {
		return "", err
	}
	if db == "" {
		return table, nil
	}
	if _, err := Identifier("database name", db); err != nil {
		return "", err
	}
	return db + "." + table, nil
}

// QuoteLiteral renders s as a single-quoted SQL string literal with embedded
// quotes and backslashes escaped.
func QuoteLiteral(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", "''")
	return "'" + escaped + "'"
}

// timeLayouts are the accepted timestamp argument formats, matching the
// formats the TDengine REST interface accepts in literals.
var timeLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseTime parses a timestamp argument in any accepted layout.
func ParseTime(arg, value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, database.NewError(database.KindValidationRejected,
		"%s %q is not a valid timestamp (want 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')", arg, value)
}

// TimeRange holds a validated half-open window [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ParseTimeRange validates both bounds and the start <= end ordering.
// An equal start and end is a valid empty window.
func ParseTimeRange(startValue, endValue string) (TimeRange, error) {
	start, err := ParseTime("start_time", startValue)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseTime("end_time", endValue)
	if err != nil {
		return TimeRange{}, err
	}
	if start.After(end) {
		return TimeRange{}, database.NewError(database.KindInvalidRange,
			"start_time %q is after end_time %q", startValue, endValue)
	}
	return TimeRange{Start: start, End: end}, nil
}

// SQL renders the range as a WHERE fragment over column: inclusive start,
// exclusive end.
func (r TimeRange) SQL(column string) string {
	return fmt.Sprintf("%s >= %s AND %s < %s",
		column, QuoteLiteral(r.Start.Format("2006-01-02 15:04:05.000")),
		column, QuoteLiteral(r.End.Format("2006-01-02 15:04:05.000")))
}
