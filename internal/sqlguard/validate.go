// Package sqlguard enforces the read-only SQL policy. Every statement the
// gateway executes passes through Validate first, including SQL produced by
// the server's own templates, so a template bug cannot smuggle a mutation.
//
// The policy is deliberately heuristic: leading-keyword allow-list plus a
// top-level mutation-keyword denylist. Dialect constructs outside the
// denylist could in principle slip through; fixing that requires a full
// TDengine SQL parser.
package sqlguard

import (
	"strings"
	"unicode"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/dberr"
)

// Rejection reasons, stable and machine-readable.
const (
	ReasonEmpty          = "empty"
	ReasonMultiStatement = "multi-statement"
	ReasonNonReadOnly    = "non-read-only keyword"
)

// readOnlyLeading is the allow-list for a statement's first keyword.
var readOnlyLeading = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
}

// mutationKeywords may not appear as a top-level token anywhere in the
// statement. The list merges the generic SQL mutations with the TDengine
// administrative statements (TRIM, FLUSH, BALANCE, ...) that also change
// server state.
var mutationKeywords = map[string]bool{
	"INSERT":       true,
	"UPDATE":       true,
	"DELETE":       true,
	"DROP":         true,
	"ALTER":        true,
	"CREATE":       true,
	"TRUNCATE":     true,
	"GRANT":        true,
	"REVOKE":       true,
	"TRIM":         true,
	"FLUSH":        true,
	"BALANCE":      true,
	"REDISTRIBUTE": true,
	"RESET":        true,
	"KILL":         true,
	"COMPACT":      true,
}

// Validate classifies a SQL statement as allowed or rejected under the
// read-only policy. A nil return means the statement may be executed.
func Validate(sql string) error {
	stmt := strings.TrimSpace(sql)
	stmt = strings.TrimSuffix(stmt, ";")
	stmt = strings.TrimRightFunc(stmt, unicode.IsSpace)

	if stmt == "" {
		return reject(ReasonEmpty, "statement is empty")
	}

	tokens := topLevelTokens(stmt)
	if len(tokens) == 0 {
		return reject(ReasonEmpty, "statement contains no SQL")
	}

	// A top-level semicolon after stripping the single trailing terminator
	// means stacked statements.
	for _, tok := range tokens {
		if tok == ";" {
			return reject(ReasonMultiStatement, "only a single statement is permitted per call")
		}
	}

	leading := strings.ToUpper(tokens[0])
	if !readOnlyLeading[leading] {
		return reject(ReasonNonReadOnly, "statement must start with SELECT, SHOW or DESCRIBE, got %q", tokens[0])
	}

	for _, tok := range tokens[1:] {
		upper := strings.ToUpper(tok)
		if mutationKeywords[upper] {
			return reject(ReasonNonReadOnly, "statement contains mutation keyword %q", upper)
		}
	}

	return nil
}

func reject(reason, format string, args ...any) error {
	err := dberr.New(dberr.KindValidationRejected, format, args...)
	err.Reason = reason
	return err
}

// topLevelTokens splits a statement into word tokens and bare semicolons,
// skipping the contents of single-quoted and double-quoted string literals
// and backtick-quoted identifiers. A keyword inside a literal therefore
// never counts against the policy.
func topLevelTokens(stmt string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(stmt)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '\'', '"', '`':
			flush()
			i = skipQuoted(runes, i, ch)
		case ';':
			flush()
			tokens = append(tokens, ";")
		default:
			if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
				current.WriteRune(ch)
			} else {
				flush()
			}
		}
	}
	flush()
	return tokens
}

// skipQuoted returns the index of the closing quote, honoring doubled quotes
// ('' -> literal quote) and backslash escapes. Unterminated literals consume
// the rest of the statement, which is safe: nothing inside them is visible
// to the keyword scan either way.
func skipQuoted(runes []rune, start int, quote rune) int {
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				i++
				continue
			}
			return i
		}
	}
	return len(runes) - 1
}
