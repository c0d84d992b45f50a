package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/treedrag/pkg/app"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTreeTool(srv, svc)
	registerDragTool(srv, svc)
	registerDropTool(srv, svc)
	registerMoveTool(srv, svc)
	registerDecodePayloadTool(srv, svc)
}

func registerListTreeTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tree",
		mcp.WithDescription("List every group and item with its path. Paths are slash separated rows such as 0/2."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.ListTree(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDragTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"drag",
		mcp.WithDescription("Pick up items into a drag payload. Only items (not groups) can be dragged."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Paths of the items to drag, for example [\"0/2\", \"1/4\"]."),
			mcp.WithStringItems(),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths, err := request.RequireStringSlice("paths")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Drag(ctx, paths)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDropTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"drop",
		mcp.WithDescription("Drop a payload into a group before the given row. Without a payload the last drag is used."),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Path of the destination group, for example 2."),
		),
		mcp.WithNumber("row",
			mcp.Description("Row to insert before; equal to the group size or -1 appends."),
			mcp.DefaultNumber(app.AppendRow),
		),
		mcp.WithString("payload",
			mcp.Description("Payload returned by the drag tool."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Target  string `json:"target"`
			Row     *int   `json:"row"`
			Payload string `json:"payload"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		row := app.AppendRow
		if args.Row != nil {
			row = *args.Row
		}

		res, err := svc.Drop(ctx, DropOptions{
			Payload: args.Payload,
			Target:  args.Target,
			Row:     row,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerMoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move",
		mcp.WithDescription("Drag items and drop them into a group in one step."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Paths of the items to move."),
			mcp.WithStringItems(),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Path of the destination group."),
		),
		mcp.WithNumber("row",
			mcp.Description("Row to insert before; equal to the group size or -1 appends."),
			mcp.DefaultNumber(app.AppendRow),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths, err := request.RequireStringSlice("paths")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target, err := request.RequireString("target")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		row := request.GetInt("row", app.AppendRow)

		res, err := svc.Move(ctx, paths, target, row)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerDecodePayloadTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"decode_payload",
		mcp.WithDescription("List the paths carried by a drag payload."),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("Payload returned by the drag tool."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := request.RequireString("payload")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		paths, err := svc.DecodePayload(ctx, payload)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"paths": paths})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
