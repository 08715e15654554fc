package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/mock/gomock"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database"
	db "github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/database/mocks"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools/catalog"

	analytics "github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/analytics/mocks"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected non-empty result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func requestWith(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func TestListEnvironmentsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("list_environments").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("lists configured environments with default", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().Environments().Return([]string{"prod", "staging"})
		mockDB.EXPECT().DefaultEnvironment().Return("prod")

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.ListEnvironmentsHandler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
		text := resultText(t, result)
		if !strings.Contains(text, `"staging"`) || !strings.Contains(text, `"default":"prod"`) {
			t.Errorf("unexpected payload: %s", text)
		}
	})

	t.Run("nil database service", func(t *testing.T) {
		deps := &tools.ToolDependencies{DBService: nil, AnalyticsService: analyticsService}
		handler := catalog.ListEnvironmentsHandler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("expected error result for nil database service")
		}
	})
}

func TestGetAllDbsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("get_all_dbs").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("lists databases", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		listing := &database.TabularResult{
			Head: []string{"name"},
			Data: [][]any{{"power"}, {"meters"}},
			Rows: 2,
		}
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{SQL: "SHOW DATABASES"}).
			Return(listing, nil)
		mockDB.EXPECT().
			ResultToJSON(listing).
			Return(`{"head":["name"],"data":[["power"],["meters"]],"rows":2}`, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetAllDbsHandler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
		if !strings.Contains(resultText(t, result), "power") {
			t.Error("expected database listing in payload")
		}
	})

	t.Run("execution failure surfaces structured error", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			Return(nil, database.NewError(database.KindConnectFailed, "dial tcp: refused"))

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetAllDbsHandler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("expected no error from handler, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Fatal("expected error result")
		}
		if !strings.Contains(resultText(t, result), `"kind":"ConnectFailed"`) {
			t.Errorf("expected ConnectFailed kind, got: %s", resultText(t, result))
		}
	})
}

func TestGetDbInfoHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("get_db_info").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("queries information_schema for the named database", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		info := &database.TabularResult{Head: []string{"name", "ntables"}, Data: [][]any{{"power", 12}}, Rows: 1}
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{
				SQL: "SELECT * FROM information_schema.ins_databases WHERE name = 'power'",
			}).
			Return(info, nil)
		mockDB.EXPECT().ResultToJSON(info).Return(`{"rows":1}`, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetDbInfoHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{"db_name": "power"}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
	})

	t.Run("falls back to the environment default database", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().DefaultDatabase("").Return("metrics")
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{
				SQL: "SELECT * FROM information_schema.ins_databases WHERE name = 'metrics'",
			}).
			Return(&database.TabularResult{Rows: 1, Data: [][]any{{"metrics"}}}, nil)
		mockDB.EXPECT().ResultToJSON(gomock.Any()).Return(`{"rows":1}`, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetDbInfoHandler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
	})

	t.Run("rejects malformed database identifier", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetDbInfoHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{"db_name": "power; DROP"}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Fatal("expected error result")
		}
		if !strings.Contains(resultText(t, result), `"kind":"ValidationRejected"`) {
			t.Errorf("expected ValidationRejected kind, got: %s", resultText(t, result))
		}
	})
}

func TestGetAllStablesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("get_all_stables").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("lists stables in the named database", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{
				Environment: "staging",
				SQL:         "SHOW power.STABLES",
			}).
			Return(&database.TabularResult{Rows: 1, Data: [][]any{{"meters"}}}, nil)
		mockDB.EXPECT().ResultToJSON(gomock.Any()).Return(`{"rows":1}`, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetAllStablesHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{
			"environment": "staging",
			"db_name":     "power",
		}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
	})
}

func TestGetAllTablesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("get_all_tables").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("filters sub-tables by stable prefix", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{
				SQL: "SHOW power.TABLES LIKE 'meters_%'",
			}).
			Return(&database.TabularResult{Rows: 2, Data: [][]any{{"meters_d0"}, {"meters_d1"}}}, nil)
		mockDB.EXPECT().ResultToJSON(gomock.Any()).Return(`{"rows":2}`, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetAllTablesHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{
			"db_name":     "power",
			"stable_name": "meters",
		}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
	})

	t.Run("lists all tables when no stable filter given", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{SQL: "SHOW power.TABLES"}).
			Return(&database.TabularResult{Rows: 0, Data: [][]any{}}, nil)
		mockDB.EXPECT().ResultToJSON(gomock.Any()).Return(`{"rows":0}`, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.GetAllTablesHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{"db_name": "power"}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
	})
}

func TestTestTableExistsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("test_table_exists").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	t.Run("existing stable reports exists true", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			Execute(gomock.Any(), database.QueryRequest{
				Database: "power",
				SQL:      "SHOW STABLES LIKE 'meters'",
			}).
			Return(&database.TabularResult{Rows: 1, Data: [][]any{{"meters"}}}, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.TestTableExistsHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{
			"db_name":     "power",
			"stable_name": "meters",
		}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result")
		}
		if !strings.Contains(resultText(t, result), `"exists":true`) {
			t.Errorf("expected exists true, got: %s", resultText(t, result))
		}
	})

	t.Run("missing stable is a negative answer, not an error", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			Return(&database.TabularResult{Rows: 0, Data: [][]any{}}, nil)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.TestTableExistsHandler(deps)
		result, err := handler(context.Background(), requestWith(map[string]any{
			"db_name":     "power",
			"stable_name": "ghost",
		}))

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || result.IsError {
			t.Fatal("expected success result for a missing stable")
		}
		if !strings.Contains(resultText(t, result), `"exists":false`) {
			t.Errorf("expected exists false, got: %s", resultText(t, result))
		}
	})

	t.Run("missing stable_name argument", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		handler := catalog.TestTableExistsHandler(deps)
		result, err := handler(context.Background(), mcp.CallToolRequest{})

		if err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
		if result == nil || !result.IsError {
			t.Error("expected error result when stable_name is absent")
		}
	})
}
