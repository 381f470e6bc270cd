// ABOUTME: Tests for MCP server
// ABOUTME: Drives the server through an in-memory client session
package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/journal/internal/db"
)

func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	_, err := server.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServerRegistersTools(t *testing.T) {
	server, _ := newTestServer(t)
	session := connect(t, server)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"add_subject", "list_subjects", "delete_subject",
		"add_entry", "list_entries", "delete_entry",
	}, names)
}

func TestServerCallTool(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	session := connect(t, server)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "add_entry",
		Arguments: map[string]any{"subject": "Garden", "detail": "planted tomatoes"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	list, err := store.GetEntries(ctx, "garden", db.Ascending, 0)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "planted tomatoes", list.Entries[0].Detail)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "delete_entry",
		Arguments: map[string]any{"entry_id": 9999},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServerResources(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	session := connect(t, server)

	_, err := store.AddEntry(ctx, db.ByName("Work"), "standup", "")
	require.NoError(t, err)

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: subjectsURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var subjects []db.Subject
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &subjects))
	require.Len(t, subjects, 1)
	assert.Equal(t, "Work", subjects[0].Name)
	assert.Equal(t, 1, subjects[0].EntryCount)

	res, err = session.ReadResource(ctx, &mcp.ReadResourceParams{URI: statsURI})
	require.NoError(t, err)

	var st db.Stats
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &st))
	assert.Equal(t, 1, st.Subjects)
	assert.Equal(t, 1, st.Entries)
}

func TestServerPrompt(t *testing.T) {
	server, _ := newTestServer(t)
	session := connect(t, server)

	res, err := session.GetPrompt(context.Background(), &mcp.GetPromptParams{Name: "journal-getting-started"})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "add_entry")
}

func TestServerListEntriesExpectedOutcomes(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	session := connect(t, server)

	for _, name := range []string{"Work", "Workout"} {
		_, err := store.CreateSubject(ctx, name)
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "bad order", args: map[string]any{"subject": "Work", "order": "sideways"}, want: "Invalid sort order"},
		{name: "ambiguous match", args: map[string]any{"subject": "wor", "match": true}, want: "Multiple matches found"},
		{name: "unmatched", args: map[string]any{"subject": "garden", "match": true}, want: "Subject 'garden' not found"},
		{name: "empty subject", args: map[string]any{"subject": " "}, want: "Subject name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "list_entries", Arguments: tt.args})
			require.NoError(t, err)
			assert.True(t, res.IsError)
			require.NotEmpty(t, res.Content)
			text, ok := res.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.want)
		})
	}
}

func TestServerListSubjectsEmpty(t *testing.T) {
	server, _ := newTestServer(t)
	session := connect(t, server)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "list_subjects", Arguments: map[string]any{}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
