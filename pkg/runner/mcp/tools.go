package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/daybook/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTasksTool(srv, svc)
	registerCreateTaskTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerToggleReminderTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerDueTasksTool(srv, svc)
	registerListJournalTool(srv, svc)
	registerCreateJournalEntryTool(srv, svc)
	registerInspireMoreTool(srv, svc)
	registerSentimentSummaryTool(srv, svc)
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally filtered by a case-insensitive search over titles and tags."),
		mcp.WithString("search",
			mcp.Description("Substring to match against task titles and tags."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		search := optString(request, "search")
		tasks, err := svc.ListTasks(ctx, search)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"search": search,
			"count":  len(tasks),
			"tasks":  tasks,
		})
	})
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a task."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("due_date",
			mcp.Description("Optional due date as YYYY-MM-DD."),
		),
		mcp.WithString("tags",
			mcp.Description("Optional comma separated tags, for example \"home, errand\"."),
		),
		mcp.WithString("user_email",
			mcp.Description("Optional email address that receives reminders."),
		),
		mcp.WithString("user_name",
			mcp.Description("Optional name used in reminders."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.CreateTask(ctx, entry.TaskForm{
			Title:     title,
			DueDate:   optString(request, "due_date"),
			Tags:      optString(request, "tags"),
			UserEmail: optString(request, "user_email"),
			UserName:  optString(request, "user_name"),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip a task between open and completed."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.ToggleTask(ctx, entry.ID(id))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerToggleReminderTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_reminder",
		mcp.WithDescription("Turn email reminders for a task on or off."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.ToggleReminder(ctx, entry.ID(id))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task. Deleting a task that no longer exists succeeds."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTask(ctx, entry.ID(id)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task including its reminder status."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.GetTask(ctx, entry.ID(id))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerDueTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"due_tasks",
		mcp.WithDescription("List tasks due within a window from now."),
		mcp.WithString("window",
			mcp.Description("Window such as 30m, 2h or 1d. Defaults to 30m."),
		),
		mcp.WithBoolean("privileged",
			mcp.Description("Attach the configured development secret header."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, minutes, err := svc.DueTasks(ctx, optString(request, "window"), optBool(request, "privileged"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"window_minutes": minutes,
			"count":          len(tasks),
			"tasks":          tasks,
		})
	})
}

func registerListJournalTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_journal",
		mcp.WithDescription("List recent journal entries, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to fetch (default 10)."),
		),
		mcp.WithString("search",
			mcp.Description("Substring to match against entry text and tags."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		search := optString(request, "search")
		entries, err := svc.ListJournal(ctx, optInt(request, "limit"), search)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"search":  search,
			"count":   len(entries),
			"entries": entries,
		})
	})
}

func registerCreateJournalEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_journal_entry",
		mcp.WithDescription("Write a journal entry. The response carries its sentiment and a motivational message."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Entry text."),
		),
		mcp.WithString("tags",
			mcp.Description("Optional comma separated tags."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		created, err := svc.CreateEntry(ctx, entry.Draft{Text: text, Tags: optString(request, "tags")})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(created)
	})
}

func registerInspireMoreTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"inspire_more",
		mcp.WithDescription("Get a fresh motivational message for the last entry written in this session."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		updated, err := svc.InspireMore(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if updated == nil {
			return mcp.NewToolResultText("No journal entry has been written in this session yet."), nil
		}
		return toJSONResult(updated)
	})
}

func registerSentimentSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"sentiment_summary",
		mcp.WithDescription("Count recent journal entries per sentiment, with chart colors."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to aggregate (default 10)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.Sentiment(ctx, optInt(request, "limit"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func optString(request mcp.CallToolRequest, key string) string {
	v, _ := request.GetArguments()[key].(string)
	return v
}

func optBool(request mcp.CallToolRequest, key string) bool {
	v, _ := request.GetArguments()[key].(bool)
	return v
}

// optInt reads a JSON number, which arrives as float64.
func optInt(request mcp.CallToolRequest, key string) int {
	v, _ := request.GetArguments()[key].(float64)
	return int(v)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
