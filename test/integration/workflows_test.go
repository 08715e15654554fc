//go:build integration

package integration

import (
	"strings"
	"testing"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/aggregate"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/catalog"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/data"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/query"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/schema"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/test/integration/helpers"
)

func TestDiscoveryWorkflow(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.deps)

	// The seeded database shows up in the catalog.
	res := tc.CallTool(catalog.GetAllDbsHandler(tc.Deps), map[string]any{})
	var databases database.TabularResult
	tc.ParseJSONResponse(res, &databases)
	found := false
	for _, row := range databases.Data {
		if len(row) > 0 && row[0] == "power" {
			found = true
		}
	}
	if !found {
		t.Fatalf("power database missing from catalog: %+v", databases.Data)
	}

	// Its stables resolve.
	res = tc.CallTool(catalog.GetAllStablesHandler(tc.Deps), map[string]any{"db_name": "power"})
	var stables database.TabularResult
	tc.ParseJSONResponse(res, &stables)
	if stables.Rows == 0 {
		t.Fatal("no stables found in power")
	}

	// And the stable's schema includes the seeded columns.
	res = tc.CallTool(schema.GetFieldInfosHandler(tc.Deps), map[string]any{
		"db_name":     "power",
		"stable_name": "meters",
	})
	var fields database.TabularResult
	tc.ParseJSONResponse(res, &fields)
	columns := map[string]bool{}
	for _, row := range fields.Data {
		if len(row) > 0 {
			if name, ok := row[0].(string); ok {
				columns[name] = true
			}
		}
	}
	for _, want := range []string{"ts", "current", "voltage", "location"} {
		if !columns[want] {
			t.Errorf("column %q missing from DESCRIBE output: %v", want, columns)
		}
	}
}

func TestExistenceProbe(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.deps)

	res := tc.CallTool(catalog.TestTableExistsHandler(tc.Deps), map[string]any{
		"db_name":     "power",
		"stable_name": "meters",
	})
	var probe map[string]any
	tc.ParseJSONResponse(res, &probe)
	if probe["exists"] != true {
		t.Errorf("meters reported missing: %v", probe)
	}

	res = tc.CallTool(catalog.TestTableExistsHandler(tc.Deps), map[string]any{
		"db_name":     "power",
		"stable_name": "no_such_stable",
	})
	tc.ParseJSONResponse(res, &probe)
	if probe["exists"] != false {
		t.Errorf("phantom stable reported present: %v", probe)
	}
}

func TestDataRetrieval(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.deps)

	res := tc.CallTool(data.GetLatestDataHandler(tc.Deps), map[string]any{
		"db_name":     "power",
		"stable_name": "meters",
		"limit":       float64(3),
	})
	var latest database.TabularResult
	tc.ParseJSONResponse(res, &latest)
	if latest.Rows == 0 || latest.Rows > 3 {
		t.Errorf("latest rows = %d, want 1..3", latest.Rows)
	}

	res = tc.CallTool(data.GetTagValuesHandler(tc.Deps), map[string]any{
		"db_name":     "power",
		"stable_name": "meters",
		"tag_name":    "location",
	})
	var tags database.TabularResult
	tc.ParseJSONResponse(res, &tags)
	if tags.Rows != 2 {
		t.Errorf("distinct locations = %d, want 2", tags.Rows)
	}
}

func TestAggregation(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.deps)

	res := tc.CallTool(aggregate.AggregateQueryHandler(tc.Deps), map[string]any{
		"db_name":       "power",
		"stable_name":   "meters",
		"agg_function":  "avg",
		"column_name":   "current",
		"interval":      "1h",
		"group_by_tags": []any{"location"},
	})
	var agg database.TabularResult
	tc.ParseJSONResponse(res, &agg)
	if agg.Rows == 0 {
		t.Error("aggregation returned no buckets over seeded data")
	}
}

func TestReadOnlyPolicyEndToEnd(t *testing.T) {
	tc := helpers.NewTestContext(t, dbs.deps)

	// Raw SELECT passes through.
	res := tc.CallTool(query.QueryTaosDbDataHandler(tc.Deps), map[string]any{
		"db_name": "power",
		"sql":     "SELECT COUNT(*) FROM power.meters",
	})
	var counted database.TabularResult
	tc.ParseJSONResponse(res, &counted)
	if counted.Rows != 1 {
		t.Errorf("count result rows = %d, want 1", counted.Rows)
	}

	// Mutations are refused before reaching the database.
	errText := tc.CallToolExpectError(query.QueryTaosDbDataHandler(tc.Deps), map[string]any{
		"db_name": "power",
		"sql":     "DROP TABLE power.meters",
	})
	if !strings.Contains(errText, "ValidationRejected") {
		t.Errorf("rejection not classified: %s", errText)
	}

	// The table is still there.
	res = tc.CallTool(catalog.TestTableExistsHandler(tc.Deps), map[string]any{
		"db_name":     "power",
		"stable_name": "meters",
	})
	var probe map[string]any
	tc.ParseJSONResponse(res, &probe)
	if probe["exists"] != true {
		t.Fatal("meters disappeared after rejected DROP")
	}
}
