// Copyright (c) 2025 Neomantra Corp

package mcp

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/relvacode/iso8601"

	"github.com/NimbleMarkets/cme-go"
	cme_analyze "github.com/NimbleMarkets/cme-go/internal/analyze"
)

// optionalString mirrors the tool-handler idiom for a parameter that may
// be absent: RequireString returns an error when the key was never set,
// which just means "use the default" here rather than a request error.
func optionalString(request mcp.CallToolRequest, key string) string {
	if val, err := request.RequireString(key); err == nil {
		return val
	}
	return ""
}

func (s *Server) runAnalysisHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	captureFile, err := request.RequireString("capture_file")
	if err != nil {
		return mcp.NewToolResultError("capture_file must be set"), nil
	}

	symbolFile := optionalString(request, "symbol_file")
	if symbolFile == "" {
		symbolFile = s.defaultSymbolFile
	}
	if symbolFile == "" {
		return mcp.NewToolResultError("symbol_file was not supplied and no default is configured"), nil
	}

	opts := cme_analyze.Options{
		CaptureFile: captureFile,
		SymbolFile:  symbolFile,
	}

	if minDepthStr := optionalString(request, "min_depth"); minDepthStr != "" {
		minDepth, err := strconv.ParseInt(minDepthStr, 10, 64)
		if err != nil {
			return mcp.NewToolResultErrorf("min_depth was not a valid integer: %s", err), nil
		}
		opts.MinDepth = minDepth
	}
	if sinceStr := optionalString(request, "since"); sinceStr != "" {
		t, err := iso8601.ParseString(sinceStr)
		if err != nil {
			return mcp.NewToolResultErrorf("since was invalid ISO 8601: %s", err), nil
		}
		opts.Since = &t
	}
	if untilStr := optionalString(request, "until"); untilStr != "" {
		t, err := iso8601.ParseString(untilStr)
		if err != nil {
			return mcp.NewToolResultErrorf("until was invalid ISO 8601: %s", err), nil
		}
		opts.Until = &t
	}

	sweepsFile, err := os.CreateTemp("", "cme-go-mcp-sweeps-*.csv")
	if err != nil {
		return mcp.NewToolResultErrorf("failed to create scratch file: %s", err), nil
	}
	icebergsFile, err := os.CreateTemp("", "cme-go-mcp-icebergs-*.csv")
	if err != nil {
		return mcp.NewToolResultErrorf("failed to create scratch file: %s", err), nil
	}
	stopsFile, err := os.CreateTemp("", "cme-go-mcp-stops-*.csv")
	if err != nil {
		return mcp.NewToolResultErrorf("failed to create scratch file: %s", err), nil
	}
	sweepsFile.Close()
	icebergsFile.Close()
	stopsFile.Close()
	opts.SweepsCSV = sweepsFile.Name()
	opts.IcebergsCSV = icebergsFile.Name()
	opts.StopsCSV = stopsFile.Name()

	result, err := s.runAnalysis(opts)
	if err != nil {
		return mcp.NewToolResultErrorf("analysis failed: %s", err), nil
	}

	if s.Logger != nil {
		s.Logger.Info("run_analysis", "capture_file", captureFile, "sweeps", len(result.Sweeps),
			"icebergs", len(result.Icebergs), "stops", len(result.Stops))
	}

	jbytes, err := json.Marshal(map[string]any{
		"packets_processed":  result.PacketsProcessed,
		"messages_processed": result.MessagesProcessed,
		"sweep_count":        len(result.Sweeps),
		"iceberg_count":      len(result.Icebergs),
		"stop_count":         len(result.Stops),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal summary: %s", err), nil
	}
	return mcp.NewToolResultText(string(jbytes)), nil
}

func optionalLimit(request mcp.CallToolRequest) int {
	limit := 100
	if limitStr := optionalString(request, "limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}
	return limit
}

func (s *Server) listSweepsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, ok := s.currentResult()
	if !ok {
		return mcp.NewToolResultError("no analysis has been run yet; call run_analysis first"), nil
	}

	symbol := optionalString(request, "symbol")
	limit := optionalLimit(request)

	rows := make([]cme.SweepRecord, 0, limit)
	for _, rec := range result.Sweeps {
		if symbol != "" && rec.Symbol != symbol {
			continue
		}
		rows = append(rows, rec)
		if len(rows) >= limit {
			break
		}
	}
	return marshalRows(rows)
}

func (s *Server) listIcebergsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, ok := s.currentResult()
	if !ok {
		return mcp.NewToolResultError("no analysis has been run yet; call run_analysis first"), nil
	}

	symbol := optionalString(request, "symbol")
	limit := optionalLimit(request)

	rows := make([]cme.IcebergRecord, 0, limit)
	for _, rec := range result.Icebergs {
		if symbol != "" && rec.Symbol != symbol {
			continue
		}
		rows = append(rows, rec)
		if len(rows) >= limit {
			break
		}
	}
	return marshalRows(rows)
}

func (s *Server) listStopsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, ok := s.currentResult()
	if !ok {
		return mcp.NewToolResultError("no analysis has been run yet; call run_analysis first"), nil
	}

	symbol := optionalString(request, "symbol")
	limit := optionalLimit(request)

	rows := make([]cme.StopRecord, 0, limit)
	for _, rec := range result.Stops {
		if symbol != "" && rec.Symbol != symbol {
			continue
		}
		rows = append(rows, rec)
		if len(rows) >= limit {
			break
		}
	}
	return marshalRows(rows)
}

func marshalRows[T any](rows []T) (*mcp.CallToolResult, error) {
	jbytes, err := json.Marshal(rows)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal results: %s", err), nil
	}
	return mcp.NewToolResultText(string(jbytes)), nil
}
