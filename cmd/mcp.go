package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"studentdb/internal/records"
	"studentdb/internal/report"
	"studentdb/internal/student"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing read-only record tools",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		return mcpserver.ServeStdio(newMCPServer(s.mgr))
	})
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func newMCPServer(mgr *records.Manager) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("studentdb", "1.0.0", mcpserver.WithToolCapabilities(false))

	// The manager is single-threaded; tool calls may arrive concurrently.
	var mu sync.Mutex
	guard := func(h mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			mu.Lock()
			defer mu.Unlock()
			return h(ctx, req)
		}
	}

	s.AddTool(listFilesTool(), guard(makeListFilesHandler(mgr)))
	s.AddTool(readStudentsTool(), guard(makeReadStudentsHandler(mgr)))
	s.AddTool(individualTaskTool(), guard(makeIndividualTaskHandler(mgr)))
	s.AddTool(historyTool(), guard(makeHistoryHandler(mgr)))
	return s
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List the student record files in the storage directory."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func readStudentsTool() mcp.Tool {
	return mcp.NewTool("read_students",
		mcp.WithDescription("Read every student of a record file: surname, group, marks and averages per subject, and GPA. Corrupt records are reported separately."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Record file name as returned by list_files"),
		),
		mcp.WithString("sort_by",
			mcp.Description("Optional order of the result: surname, gpa, physics, math or cs. The file itself is not changed."),
		),
		mcp.WithBoolean("descending",
			mcp.Description("Sort in descending order (default false)"),
		),
	)
}

func individualTaskTool() mcp.Tool {
	return mcp.NewTool("individual_task",
		mcp.WithDescription("List the students of a record file whose math and cs marks are all passing (at least 4)."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Record file name as returned by list_files"),
		),
	)
}

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("Show recent changes to the record files, newest first."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("file",
			mcp.Description("Optional record file to restrict the history to"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)"),
		),
	)
}

// --- Handler factories ---

func makeListFilesHandler(mgr *records.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(report.Files(mgr.Files())), nil
	}
}

func makeReadStudentsHandler(mgr *records.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file == "" {
			return mcp.NewToolResultError("file is required"), nil
		}
		file = resolveFile(mgr, file)

		students, failures, err := mgr.Students(file)
		if err != nil {
			return toolError(file, err), nil
		}
		if by := req.GetString("sort_by", ""); by != "" {
			field, err := student.ParseSortField(by)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			dir := student.Ascending
			if req.GetBool("descending", false) {
				dir = student.Descending
			}
			students = student.Sort(students, field, dir)
		}
		return mcp.NewToolResultText(report.Students(file, students, failures)), nil
	}
}

func makeIndividualTaskHandler(mgr *records.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file == "" {
			return mcp.NewToolResultError("file is required"), nil
		}
		file = resolveFile(mgr, file)

		students, err := mgr.IndividualTask(file)
		if err != nil {
			return toolError(file, err), nil
		}
		return mcp.NewToolResultText(report.Students(file+": no failing math or cs marks", students, nil)), nil
	}
}

func makeHistoryHandler(mgr *records.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file != "" {
			file = resolveFile(mgr, file)
		}
		limit := req.GetInt("limit", 20)
		if limit <= 0 {
			limit = 20
		}

		entries, err := mgr.History(file, limit)
		if errors.Is(err, records.ErrNoJournal) {
			return mcp.NewToolResultText("The operation journal is disabled."), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read history failed: %v", err)), nil
		}
		return mcp.NewToolResultText(report.History(entries)), nil
	}
}

func toolError(file string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s (call list_files to see available files)", file, records.Message(err)))
}
