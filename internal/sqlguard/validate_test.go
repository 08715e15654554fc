package sqlguard_test

import (
	"errors"
	"testing"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/sqlguard"
)

func TestValidateAllowsReadStatements(t *testing.T) {
	allowed := []string{
		"SELECT * FROM power.meters LIMIT 10",
		"select ts, current from meters where location = 'beijing'",
		"SHOW DATABASES",
		"SHOW power.STABLES",
		"DESCRIBE power.meters",
		"describe meters;",
		"  SELECT COUNT(*) FROM meters  ",
		"SELECT * FROM meters WHERE note = 'please DROP this'",
		"SELECT * FROM meters WHERE note = 'a;b'",
		"SELECT `select` FROM meters",
		"SELECT AVG(current) FROM meters PARTITION BY location INTERVAL(1h)",
	}
	for _, stmt := range allowed {
		if err := sqlguard.Validate(stmt); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", stmt, err)
		}
	}
}

func TestValidateRejectsMutations(t *testing.T) {
	tests := []struct {
		sql    string
		reason string
	}{
		{"", sqlguard.ReasonEmpty},
		{"   ", sqlguard.ReasonEmpty},
		{";", sqlguard.ReasonEmpty},
		{"INSERT INTO meters VALUES (NOW(), 1.0)", sqlguard.ReasonNonReadOnly},
		{"DROP TABLE meters", sqlguard.ReasonNonReadOnly},
		{"drop database power", sqlguard.ReasonNonReadOnly},
		{"ALTER TABLE meters ADD COLUMN phase FLOAT", sqlguard.ReasonNonReadOnly},
		{"CREATE DATABASE test", sqlguard.ReasonNonReadOnly},
		{"TRUNCATE TABLE meters", sqlguard.ReasonNonReadOnly},
		{"GRANT ALL ON power TO user1", sqlguard.ReasonNonReadOnly},
		{"TRIM DATABASE power", sqlguard.ReasonNonReadOnly},
		{"FLUSH DATABASE power", sqlguard.ReasonNonReadOnly},
		{"KILL QUERY 'abc'", sqlguard.ReasonNonReadOnly},
		{"COMPACT DATABASE power", sqlguard.ReasonNonReadOnly},
		{"EXPLAIN SELECT * FROM meters", sqlguard.ReasonNonReadOnly},
		{"SELECT * FROM t; DROP TABLE t;", sqlguard.ReasonMultiStatement},
		{"SHOW DATABASES; SHOW STABLES", sqlguard.ReasonMultiStatement},
		// Mutation keyword smuggled past the leading check.
		{"SELECT * FROM meters UNION SELECT 1 DROP TABLE meters", sqlguard.ReasonNonReadOnly},
	}

	for _, tc := range tests {
		err := sqlguard.Validate(tc.sql)
		if err == nil {
			t.Errorf("Validate(%q) = nil, want rejection", tc.sql)
			continue
		}
		if kind := database.KindOf(err); kind != database.KindValidationRejected {
			t.Errorf("Validate(%q) kind = %s, want ValidationRejected", tc.sql, kind)
		}
		var gw *database.Error
		if !errors.As(err, &gw) {
			t.Errorf("Validate(%q) did not return a classified error", tc.sql)
			continue
		}
		if gw.Reason != tc.reason {
			t.Errorf("Validate(%q) reason = %q, want %q", tc.sql, gw.Reason, tc.reason)
		}
	}
}

func TestValidateSingleTrailingTerminator(t *testing.T) {
	// One trailing semicolon is a statement terminator, not stacking.
	if err := sqlguard.Validate("SELECT * FROM meters;"); err != nil {
		t.Errorf("trailing terminator rejected: %v", err)
	}
	if err := sqlguard.Validate("SELECT * FROM meters; ;"); err == nil {
		t.Error("stacked empty statement accepted")
	}
}

func TestValidateKeywordsInsideLiterals(t *testing.T) {
	// Keywords inside quoted literals and identifiers are invisible to the
	// policy scan.
	stmts := []string{
		`SELECT * FROM meters WHERE note = 'DELETE FROM meters'`,
		`SELECT * FROM meters WHERE note = "INSERT here"`,
		"SELECT `drop` FROM meters",
		`SELECT * FROM meters WHERE note = 'it''s an UPDATE'`,
	}
	for _, stmt := range stmts {
		if err := sqlguard.Validate(stmt); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", stmt, err)
		}
	}
}
