// ABOUTME: MCP prompt definitions for the journal
// ABOUTME: Provides static context to AI assistants about journal capabilities
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const gettingStarted = `Journal is a personal notebook that keeps dated entries grouped by subject.

When to use journal:
- User wants to note something down ("remember that...", "journal this")
- User asks what they recorded about a topic
- User wants a quick history of a subject, oldest or newest first

How it works:
- add_entry creates the subject on first use, so there is no need to call add_subject first
- Subject names ignore letter case: "Health" and "health" are the same subject
- Dates default to now; pass a date only when the user gives one
- list_entries with match=true accepts a unique partial subject name
- delete_subject removes every entry under the subject; confirm with the user before calling it

Read journal://subjects to see what subjects exist.`

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "journal-getting-started",
		Description: "Introduction to the journal and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		result := &mcp.GetPromptResult{
			Description: "Getting started with the journal",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: gettingStarted,
					},
				},
			},
		}

		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
