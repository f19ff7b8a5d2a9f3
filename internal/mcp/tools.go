// Copyright (c) 2025 Neomantra Corp

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcp_server "github.com/mark3labs/mcp-go/server"
)

// registerTools attaches every tool this server exposes to mcpServer.
func (s *Server) registerTools(mcpServer *mcp_server.MCPServer) {
	runAnalysisTool := mcp.NewTool("run_analysis",
		mcp.WithDescription("Decodes a CME MDP 3.0 capture file and replaces the server's in-memory analysis with its sweeps, icebergs, and stop runs"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("capture_file",
			mcp.Required(),
			mcp.Description("Path to the ERF capture file to analyze"),
		),
		mcp.WithString("symbol_file",
			mcp.Description("Path to the symbol file (security id -> symbol/tick_size/price_shift); defaults to the server's configured symbol file"),
		),
		mcp.WithString("since",
			mcp.Description("ISO 8601 lower bound on capture timestamp"),
		),
		mcp.WithString("until",
			mcp.Description("ISO 8601 upper bound on capture timestamp"),
		),
		mcp.WithString("min_depth",
			mcp.Description("Price distance a sweep must exceed (end vs start price) to be reported, as a decimal string; default 0"),
		),
	)
	mcpServer.AddTool(runAnalysisTool, s.runAnalysisHandler)

	listSweepsTool := mcp.NewTool("list_sweeps",
		mcp.WithDescription("Lists detected sweep trades from the server's current analysis"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("symbol", mcp.Description("Restrict to this symbol")),
		mcp.WithString("limit", mcp.Description("Maximum rows to return, as a decimal string; default 100")),
	)
	mcpServer.AddTool(listSweepsTool, s.listSweepsHandler)

	listIcebergsTool := mcp.NewTool("list_icebergs",
		mcp.WithDescription("Lists detected iceberg orders from the server's current analysis"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("symbol", mcp.Description("Restrict to this symbol")),
		mcp.WithString("limit", mcp.Description("Maximum rows to return, as a decimal string; default 100")),
	)
	mcpServer.AddTool(listIcebergsTool, s.listIcebergsHandler)

	listStopsTool := mcp.NewTool("list_stops",
		mcp.WithDescription("Lists detected stop-order trigger chains from the server's current analysis"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("symbol", mcp.Description("Restrict to this symbol")),
		mcp.WithString("limit", mcp.Description("Maximum rows to return, as a decimal string; default 100")),
	)
	mcpServer.AddTool(listStopsTool, s.listStopsHandler)
}
