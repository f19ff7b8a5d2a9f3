// Copyright (c) 2025 Neomantra Corp
//
// Top-level capture analysis run: wires the registry, dispatcher, and
// pcap reader together and drains an AnalysisResult into the CSV (and
// optional DuckDB) sinks.
//

package analyze

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/NimbleMarkets/cme-go"
	"github.com/NimbleMarkets/cme-go/internal/file"
	"github.com/NimbleMarkets/cme-go/internal/pcap"
)

// Options configures one capture-file analysis run.
type Options struct {
	CaptureFile string
	SymbolFile  string

	SweepsCSV   string
	IcebergsCSV string
	StopsCSV    string
	DuckDBFile  string // optional; empty skips the DuckDB sink

	ForceZstdInput bool
	MinDepth       int64

	Since *time.Time // inclusive lower bound on capture timestamp, or nil
	Until *time.Time // inclusive upper bound on capture timestamp, or nil
}

// Run decodes opts.CaptureFile, drives the detectors to completion, and
// writes every configured report sink. It returns the run's
// AnalysisResult for callers that also want an in-process summary
// (e.g. the --summary flag or the MCP server).
func Run(opts Options) (cme.AnalysisResult, error) {
	var result cme.AnalysisResult

	symbolFile, err := os.Open(opts.SymbolFile)
	if err != nil {
		return result, fmt.Errorf("opening symbol file: %w", err)
	}
	defer symbolFile.Close()

	registry := cme.NewRegistry()
	if err := registry.LoadSymbols(symbolFile); err != nil {
		return result, fmt.Errorf("loading symbol file: %w", err)
	}

	captureFile, closer, err := cme.MakeCompressedReader(opts.CaptureFile, opts.ForceZstdInput)
	if err != nil {
		return result, fmt.Errorf("opening capture file: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	dispatcher := cme.NewDispatcher(registry, opts.MinDepth)
	reader := pcap.NewReader(captureFile)

	for {
		ts, payload, ok, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("reading capture: %w", err)
		}
		if !ok {
			continue // malformed or non-IP frame, skip to the next record
		}
		if opts.Since != nil && ts < opts.Since.UnixNano() {
			continue
		}
		if opts.Until != nil && ts > opts.Until.UnixNano() {
			continue
		}

		scanner, err := cme.NewMessageScanner(payload)
		if err != nil {
			continue // malformed packet header, skip the packet
		}

		dispatcher.BeginPacket(ts)
		if err := scanner.Visit(dispatcher); err != nil {
			continue // malformed message aborts this packet only
		}
	}

	result = dispatcher.Finish()
	if err := writeReports(result, opts); err != nil {
		return result, err
	}
	return result, nil
}

func writeReports(result cme.AnalysisResult, opts Options) error {
	if err := writeSweeps(opts.SweepsCSV, result); err != nil {
		return err
	}
	if err := writeIcebergs(opts.IcebergsCSV, result); err != nil {
		return err
	}
	if err := writeStops(opts.StopsCSV, result); err != nil {
		return err
	}
	if opts.DuckDBFile != "" {
		sink, err := file.NewDuckDBSink(opts.DuckDBFile)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.WriteResult(result); err != nil {
			return fmt.Errorf("writing duckdb sink: %w", err)
		}
	}
	return nil
}

func writeSweeps(path string, result cme.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sweeps csv: %w", err)
	}
	defer f.Close()

	w, err := file.NewSweepsWriter(f)
	if err != nil {
		return err
	}
	for _, rec := range result.Sweeps {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Close()
}

func writeIcebergs(path string, result cme.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating icebergs csv: %w", err)
	}
	defer f.Close()

	w, err := file.NewIcebergsWriter(f)
	if err != nil {
		return err
	}
	for _, rec := range result.Icebergs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Close()
}

func writeStops(path string, result cme.AnalysisResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stops csv: %w", err)
	}
	defer f.Close()

	w, err := file.NewStopsWriter(f)
	if err != nil {
		return err
	}
	for _, rec := range result.Stops {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Close()
}
