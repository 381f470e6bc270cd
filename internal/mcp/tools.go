// ABOUTME: MCP tool implementations for the journal
// ABOUTME: Wraps subject and entry operations as typed tool handlers
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/journal/internal/db"
)

// SubjectInput names a subject by name or numeric ID.
type SubjectInput struct {
	Subject string `json:"subject" jsonschema:"Subject name, or its numeric ID"`
}

// AddSubjectInput defines the input for add_subject tool.
type AddSubjectInput struct {
	Name string `json:"name" jsonschema:"Name of the subject to create"`
}

// SubjectOutput is a single subject plus a status message.
type SubjectOutput struct {
	Subject db.Subject `json:"subject" jsonschema:"The subject"`
	Message string     `json:"message" jsonschema:"Status message"`
}

// ListSubjectsInput defines the input for list_subjects tool.
type ListSubjectsInput struct{}

// ListSubjectsOutput defines the output for list_subjects tool.
type ListSubjectsOutput struct {
	Subjects []db.Subject `json:"subjects" jsonschema:"All subjects sorted by name"`
	Count    int          `json:"count" jsonschema:"Number of subjects"`
}

// DeleteSubjectOutput defines the output for delete_subject tool.
type DeleteSubjectOutput struct {
	SubjectID      int64  `json:"subject_id" jsonschema:"ID of the deleted subject"`
	EntriesRemoved int    `json:"entries_removed" jsonschema:"Number of entries deleted with it"`
	Message        string `json:"message" jsonschema:"Status message"`
}

// AddEntryInput defines the input for add_entry tool.
type AddEntryInput struct {
	Subject string `json:"subject" jsonschema:"Subject name or numeric ID; unknown names are created"`
	Detail  string `json:"detail" jsonschema:"The entry text"`
	Date    string `json:"date,omitempty" jsonschema:"Optional date, e.g. 2025-01-15 14:00:00; defaults to now"`
}

// AddEntryOutput defines the output for add_entry tool.
type AddEntryOutput struct {
	Entry          db.Entry `json:"entry" jsonschema:"The stored entry"`
	SubjectCreated bool     `json:"subject_created" jsonschema:"Whether the subject was created by this call"`
	Message        string   `json:"message" jsonschema:"Status message"`
}

// ListEntriesInput defines the input for list_entries tool.
type ListEntriesInput struct {
	Subject string `json:"subject" jsonschema:"Subject name in any letter case"`
	Order   string `json:"order,omitempty" jsonschema:"asc (oldest first, default) or desc (newest first)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum entries to return; 0 for all"`
	Match   bool   `json:"match,omitempty" jsonschema:"Accept a unique partial subject name"`
}

// ListEntriesOutput defines the output for list_entries tool.
type ListEntriesOutput struct {
	Subject string     `json:"subject" jsonschema:"Stored subject name"`
	Order   string     `json:"order" jsonschema:"Sort order applied"`
	Entries []db.Entry `json:"entries" jsonschema:"Entries in date order"`
	Count   int        `json:"count" jsonschema:"Number of entries returned"`
	Message string     `json:"message" jsonschema:"Status message"`
}

// DeleteEntryInput defines the input for delete_entry tool.
type DeleteEntryInput struct {
	EntryID int64 `json:"entry_id" jsonschema:"ID of the entry to delete"`
}

// DeleteEntryOutput defines the output for delete_entry tool.
type DeleteEntryOutput struct {
	EntryID int64  `json:"entry_id" jsonschema:"ID of the deleted entry"`
	Message string `json:"message" jsonschema:"Status message"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_subject",
		Description: "Create a journal subject. Subjects are also created automatically by add_entry.",
	}, s.handleAddSubject)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_subjects",
		Description: "List all journal subjects with their entry counts.",
	}, s.handleListSubjects)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_subject",
		Description: "Delete a subject and every entry under it. Only use when the user explicitly asks.",
	}, s.handleDeleteSubject)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_entry",
		Description: "Record a dated journal entry under a subject. Use this when the user asks to note, journal, or remember something.",
	}, s.handleAddEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List a subject's entries sorted by date.",
	}, s.handleListEntries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_entry",
		Description: "Delete a single journal entry by ID.",
	}, s.handleDeleteEntry)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// expectedResult turns an expected store outcome into a tool-level error
// the assistant can read. Anything else stays a Go error. Structured
// output is still validated on error results, so list outputs returned
// alongside it must carry empty slices rather than nil.
func expectedResult(err error) (*mcp.CallToolResult, error) {
	if db.IsExpected(err) {
		res := textResult(err.Error())
		res.IsError = true
		return res, nil
	}
	return nil, err
}

// handleAddSubject implements the add_subject tool.
func (s *Server) handleAddSubject(ctx context.Context, req *mcp.CallToolRequest, input AddSubjectInput) (*mcp.CallToolResult, SubjectOutput, error) {
	res, err := s.store.CreateSubject(ctx, input.Name)
	if err != nil {
		r, err := expectedResult(err)
		return r, SubjectOutput{}, err
	}
	out := SubjectOutput{Subject: res.Subject, Message: res.Message}
	return textResult(fmt.Sprintf("%s (ID: %d)", res.Message, res.Subject.ID)), out, nil
}

// handleListSubjects implements the list_subjects tool.
func (s *Server) handleListSubjects(ctx context.Context, req *mcp.CallToolRequest, _ ListSubjectsInput) (*mcp.CallToolResult, ListSubjectsOutput, error) {
	subjects, err := s.store.ListSubjects(ctx)
	if err != nil {
		r, err := expectedResult(err)
		return r, ListSubjectsOutput{Subjects: []db.Subject{}}, err
	}
	out := ListSubjectsOutput{Subjects: subjects, Count: len(subjects)}
	return textResult(fmt.Sprintf("Found %d subjects", len(subjects))), out, nil
}

// handleDeleteSubject implements the delete_subject tool.
func (s *Server) handleDeleteSubject(ctx context.Context, req *mcp.CallToolRequest, input SubjectInput) (*mcp.CallToolResult, DeleteSubjectOutput, error) {
	found, err := s.store.ResolveSubject(ctx, db.ByName(input.Subject), false)
	if err != nil {
		r, err := expectedResult(err)
		return r, DeleteSubjectOutput{}, err
	}
	res, err := s.store.DeleteSubject(ctx, found.Subject.ID)
	if err != nil {
		r, err := expectedResult(err)
		return r, DeleteSubjectOutput{}, err
	}
	out := DeleteSubjectOutput{SubjectID: res.Subject.ID, EntriesRemoved: res.EntriesRemoved, Message: res.Message}
	return textResult(res.Message), out, nil
}

// handleAddEntry implements the add_entry tool.
func (s *Server) handleAddEntry(ctx context.Context, req *mcp.CallToolRequest, input AddEntryInput) (*mcp.CallToolResult, AddEntryOutput, error) {
	res, err := s.store.AddEntry(ctx, db.ByName(input.Subject), input.Detail, input.Date)
	if err != nil {
		r, err := expectedResult(err)
		return r, AddEntryOutput{}, err
	}
	out := AddEntryOutput{Entry: res.Entry, SubjectCreated: res.SubjectCreated, Message: res.Message}
	text := fmt.Sprintf("%s (ID: %d) under '%s' at %s", res.Message, res.Entry.ID, res.Entry.Subject, res.Entry.Date)
	return textResult(text), out, nil
}

// handleListEntries implements the list_entries tool.
func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, ListEntriesOutput, error) {
	order, err := db.ParseOrder(input.Order)
	if err != nil {
		r, err := expectedResult(err)
		return r, ListEntriesOutput{Entries: []db.Entry{}}, err
	}

	name := input.Subject
	if input.Match {
		m, err := s.store.MatchSubject(ctx, name)
		if err != nil {
			r, err := expectedResult(err)
			return r, ListEntriesOutput{Entries: []db.Entry{}}, err
		}
		name = m.Subject.Name
	}

	list, err := s.store.GetEntries(ctx, name, order, input.Limit)
	if err != nil {
		r, err := expectedResult(err)
		return r, ListEntriesOutput{Entries: []db.Entry{}}, err
	}

	out := ListEntriesOutput{
		Subject: list.Subject,
		Order:   list.Order.String(),
		Entries: list.Entries,
		Count:   list.Count,
		Message: list.Message,
	}
	return textResult(list.Message), out, nil
}

// handleDeleteEntry implements the delete_entry tool.
func (s *Server) handleDeleteEntry(ctx context.Context, req *mcp.CallToolRequest, input DeleteEntryInput) (*mcp.CallToolResult, DeleteEntryOutput, error) {
	res, err := s.store.DeleteEntry(ctx, input.EntryID)
	if err != nil {
		r, err := expectedResult(err)
		return r, DeleteEntryOutput{}, err
	}
	return textResult(res.Message), DeleteEntryOutput{EntryID: res.ID, Message: res.Message}, nil
}
