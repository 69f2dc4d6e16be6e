package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	srv.AddResourceTemplate(dayTemplate(), dayResourceHandler(svc))
}

func dayTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"liftlog://days/{date}",
		"Day Log",
		mcp.WithTemplateDescription("Exercise entries logged on a day (YYYY-MM-DD)."),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

func dayResourceHandler(svc *Service) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		day := argument(request.Params.Arguments, "date")
		if day == "" {
			return nil, fmt.Errorf("date is required")
		}
		dto, err := svc.ListEntries(ctx, day)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	}
}

// argument reads a template variable, which the server may deliver either as
// a plain string or as a single-element slice.
func argument(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
