// Copyright (c) 2025 Neomantra Corp
//
// Model Context Protocol server exposing a completed capture analysis
// to an LLM: list/filter its sweeps, icebergs, and stop runs, and
// re-run the analysis against a different capture file.
//

package mcp

import (
	"log/slog"
	"sync"

	mcp_server "github.com/mark3labs/mcp-go/server"

	"github.com/NimbleMarkets/cme-go"
	cme_analyze "github.com/NimbleMarkets/cme-go/internal/analyze"
)

const serverVersion = "0.0.1"

// Server holds the most recent analysis run and the default symbol file
// a run_analysis call uses when it supplies none.
type Server struct {
	Logger *slog.Logger

	defaultSymbolFile string

	mu     sync.RWMutex
	result cme.AnalysisResult
	have   bool
}

// NewServer builds a Server with no analysis loaded yet. defaultSymbolFile
// is used by the run_analysis tool when the caller doesn't supply one.
func NewServer(logger *slog.Logger, defaultSymbolFile string) *Server {
	return &Server{Logger: logger, defaultSymbolFile: defaultSymbolFile}
}

// SetResult replaces the currently held analysis, e.g. after the CLI
// preloads one before starting the MCP loop.
func (s *Server) SetResult(result cme.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.have = true
}

func (s *Server) currentResult() (cme.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.have
}

func (s *Server) runAnalysis(opts cme_analyze.Options) (cme.AnalysisResult, error) {
	result, err := cme_analyze.Run(opts)
	if err != nil {
		return result, err
	}
	s.SetResult(result)
	return result, nil
}

// NewMCPServer builds the underlying mark3labs/mcp-go server with every
// tool registered against s.
func (s *Server) NewMCPServer() *mcp_server.MCPServer {
	mcpServer := mcp_server.NewMCPServer("cme-go-mcp", serverVersion)
	s.registerTools(mcpServer)
	return mcpServer
}
