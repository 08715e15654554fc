package taosql

import (
	"fmt"
	"strings"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
)

// aggregateFunctions is the allow-list for aggregate_query. Anything else is
// rejected before the statement is built.
var aggregateFunctions = map[string]bool{
	"avg":    true,
	"sum":    true,
	"min":    true,
	"max":    true,
	"count":  true,
	"first":  true,
	"last":   true,
	"spread": true,
	"stddev": true,
}

// AggregateFunction validates name against the allow-list and returns its
// canonical upper-case spelling.
func AggregateFunction(name string) (string, error) {
	if !aggregateFunctions[strings.ToLower(name)] {
		return "", database.NewError(database.KindValidationRejected,
			"aggregation function %q is not allowed (want one of avg, sum, min, max, count, first, last, spread, stddev)", name)
	}
	return strings.ToUpper(name), nil
}

// AggregateSpec describes one downsampling/aggregation statement.
type AggregateSpec struct {
	// Target is the already-qualified table or stable reference.
	Target string
	// Function must pass AggregateFunction.
	Function string
	// Column is the measurement column the function applies to.
	Column string
	// Interval enables INTERVAL() downsampling when non-nil.
	Interval *Interval
	// GroupByTags become a PARTITION BY clause.
	GroupByTags []string
	// Range restricts the scanned window when non-nil.
	Range *TimeRange
	// RelativeWindow, when non-empty, is a server-evaluated lookback such as
	// "24h": the WHERE clause becomes ts >= NOW() - 24h. Mutually exclusive
	// with Range; server evaluation keeps repeated composite calls free of
	// client-side clock skew.
	RelativeWindow string
}

// BuildAggregateQuery renders spec into a single read-only SELECT. Every
// identifier is validated; the output always passes the policy validator.
func BuildAggregateQuery(spec AggregateSpec) (string, error) {
	fn, err := AggregateFunction(spec.Function)
	if err != nil {
		return "", err
	}
	column, err := Identifier("column name", spec.Column)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	if spec.Interval != nil {
		// _wstart is the window start pseudo-column TDengine emits for
		// INTERVAL queries.
		b.WriteString("_wstart, ")
	}
	fmt.Fprintf(&b, "%s(%s)", fn, column)
	fmt.Fprintf(&b, " FROM %s", spec.Target)

	switch {
	case spec.Range != nil:
		b.WriteString(" WHERE ")
		b.WriteString(spec.Range.SQL("ts"))
	case spec.RelativeWindow != "":
		window, err := ParseInterval(spec.RelativeWindow)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, " WHERE ts >= NOW() - %s", window)
	}

	if len(spec.GroupByTags) > 0 {
		tags := make([]string, 0, len(spec.GroupByTags))
		for _, tag := range spec.GroupByTags {
			validated, err := Identifier("tag name", tag)
			if err != nil {
				return "", err
			}
			tags = append(tags, validated)
		}
		fmt.Fprintf(&b, " PARTITION BY %s", strings.Join(tags, ", "))
	}
	if spec.Interval != nil {
		fmt.Fprintf(&b, " INTERVAL(%s)", spec.Interval)
	}

	return b.String(), nil
}
