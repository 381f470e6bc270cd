// ABOUTME: MCP resource implementations for the journal
// ABOUTME: Provides subject listings and journal statistics as JSON
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	subjectsURI = "journal://subjects"
	statsURI    = "journal://stats"
)

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         subjectsURI,
		Name:        "Subjects",
		Description: "All journal subjects with entry counts, sorted by name",
		MIMEType:    "application/json",
	}, s.handleSubjects)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Stats",
		Description: "Total subjects, total entries, and database size in bytes",
		MIMEType:    "application/json",
	}, s.handleStats)
}

// handleSubjects implements the subjects resource.
func (s *Server) handleSubjects(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	subjects, err := s.store.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return jsonResource(subjectsURI, subjects)
}

// handleStats implements the stats resource.
func (s *Server) handleStats(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return jsonResource(statsURI, st)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	result := &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}

	return result, nil
}
