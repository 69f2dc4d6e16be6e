package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(listEntriesTool(), listEntriesHandler(svc))
	srv.AddTool(createEntryTool(), createEntryHandler(svc))
	srv.AddTool(updateEntryTool(), updateEntryHandler(svc))
	srv.AddTool(deleteEntryTool(), deleteEntryHandler(svc))
	srv.AddTool(listDaysTool(), listDaysHandler(svc))
}

func dayParam() mcp.ToolOption {
	return mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Day in YYYY-MM-DD form."),
	)
}

func fieldParams(required bool) []mcp.ToolOption {
	opt := func(desc string) []mcp.PropertyOption {
		out := []mcp.PropertyOption{mcp.Description(desc)}
		if required {
			out = append(out, mcp.Required())
		}
		return out
	}
	return []mcp.ToolOption{
		mcp.WithString("name", mcp.Description("Exercise name; may be empty.")),
		mcp.WithString("weight", opt("Weight as typed, for example 100 or 62.5.")...),
		mcp.WithString("reps", opt("Repetitions per set.")...),
		mcp.WithString("sets", opt("Number of sets.")...),
	}
}

type entryArgs struct {
	Date   string `json:"date"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
	Sets   string `json:"sets"`
}

func (a entryArgs) options() EntryOptions {
	return EntryOptions{Day: a.Date, ID: a.ID, Name: a.Name, Weight: a.Weight, Reps: a.Reps, Sets: a.Sets}
}

func listEntriesTool() mcp.Tool {
	return mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List the exercise entries logged on a day, in the order they were added."),
		dayParam(),
	)
}

func listEntriesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ListEntries(ctx, day)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func createEntryTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Log a new exercise entry at the end of a day."),
		dayParam(),
	}, fieldParams(true)...)
	return mcp.NewTool("create_entry", opts...)
}

func createEntryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args entryArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.CreateEntry(ctx, args.options())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func updateEntryTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Replace the name, weight, reps and sets of an existing entry."),
		dayParam(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
	}, fieldParams(true)...)
	return mcp.NewTool("update_entry", opts...)
}

func updateEntryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args entryArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.UpdateEntry(ctx, args.options())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func deleteEntryTool() mcp.Tool {
	return mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Permanently delete an entry."),
		dayParam(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)
}

func deleteEntryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		day, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEntry(ctx, day, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id, "day": day})
	}
}

func listDaysTool() mcp.Tool {
	return mcp.NewTool(
		"list_days",
		mcp.WithDescription("List every day that has at least one entry, oldest first."),
	)
}

func listDaysHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, err := svc.ListDays(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"days": days, "count": len(days)})
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
