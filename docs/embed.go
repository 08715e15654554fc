package docs

import (
	_ "embed"
)

// TaosQueryPrompt embeds the query guidance template served by the
// taos_query prompt. It tells an LLM how to explore a TDengine deployment
// through the gateway's read-only tools.
//
//go:embed prompts/taos_query.md
var TaosQueryPrompt string
