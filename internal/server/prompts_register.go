package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/GHOST-LOVE-YOU/tdengine-mcp/docs"
)

// registerPrompts wires the embedded query-guidance prompt and the
// query-explanation prompt template.
func (s *TDengineMCPServer) registerPrompts() {
	s.MCPServer.AddPrompt(
		mcp.NewPrompt("taos_query",
			mcp.WithPromptDescription("Query a Taos(涛思) database."),
		),
		func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult(
				"TDengine query guidance",
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(docs.TaosQueryPrompt)),
				},
			), nil
		},
	)

	s.MCPServer.AddPrompt(
		mcp.NewPrompt("describe_query_prompt",
			mcp.WithPromptDescription("Generate a prompt to ask an LLM to explain what a given SQL query does."),
			mcp.WithArgument("query",
				mcp.ArgumentDescription("The SQL query string"),
				mcp.RequiredArgument(),
			),
		),
		func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			queryText := request.Params.Arguments["query"]
			if queryText == "" {
				return nil, fmt.Errorf("query argument is required")
			}
			promptText := fmt.Sprintf(
				"Explain the following SQL query:\n\n%s\n\nDescribe what data it retrieves and suggest any potential improvements.",
				queryText,
			)
			return mcp.NewGetPromptResult(
				"SQL query explanation",
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(promptText)),
				},
			), nil
		},
	)
}
