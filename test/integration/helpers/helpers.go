// Package helpers carries the shared plumbing for the integration suite:
// invoking tool handlers the way the MCP server does and decoding their
// structured results.
package helpers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/internal/tools"
)

// ToolHandler is the closure shape every tool package exposes.
type ToolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// TestContext bundles the live dependencies with assertion helpers.
type TestContext struct {
	T    *testing.T
	Deps *tools.ToolDependencies
}

// NewTestContext wraps the suite-wide dependencies for one test.
func NewTestContext(t *testing.T, deps *tools.ToolDependencies) *TestContext {
	t.Helper()
	return &TestContext{T: t, Deps: deps}
}

// CallTool invokes a handler with the given arguments and fails the test on
// transport errors or error results.
func (tc *TestContext) CallTool(handler ToolHandler, args map[string]any) *mcp.CallToolResult {
	tc.T.Helper()
	res, err := handler(context.Background(), requestWith(args))
	if err != nil {
		tc.T.Fatalf("handler returned transport error: %v", err)
	}
	if res.IsError {
		tc.T.Fatalf("handler returned error result: %s", ResultText(tc.T, res))
	}
	return res
}

// CallToolExpectError invokes a handler and fails unless it produced an
// error result; the error text is returned for kind assertions.
func (tc *TestContext) CallToolExpectError(handler ToolHandler, args map[string]any) string {
	tc.T.Helper()
	res, err := handler(context.Background(), requestWith(args))
	if err != nil {
		tc.T.Fatalf("handler returned transport error: %v", err)
	}
	if !res.IsError {
		tc.T.Fatalf("handler succeeded, want error result: %s", ResultText(tc.T, res))
	}
	return ResultText(tc.T, res)
}

// ParseJSONResponse decodes a result's text content into out.
func (tc *TestContext) ParseJSONResponse(res *mcp.CallToolResult, out any) {
	tc.T.Helper()
	text := ResultText(tc.T, res)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		tc.T.Fatalf("decoding tool response %q: %v", text, err)
	}
}

// ResultText extracts the first text content block of a result.
func ResultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return text.Text
}

func requestWith(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}
