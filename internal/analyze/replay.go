// Copyright (c) 2025 Neomantra Corp
//
// Replay of the JSON-lines alternate capture format: re-parses each
// decoded-message line and drives it through the same Dispatcher a raw
// capture file would, for fixtures and debugging without an ERF file.
//

package analyze

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/valyala/fastjson"

	"github.com/NimbleMarkets/cme-go"
)

// ReplayJSONOptions configures a replay-json run.
type ReplayJSONOptions struct {
	JsonFile   string
	SymbolFile string

	SweepsCSV   string
	IcebergsCSV string
	StopsCSV    string
	DuckDBFile  string

	MinDepth int64
}

// ReplayJSON reads opts.JsonFile's decoded-message lines (as emitted by
// the `json` command) and analyzes them as if they'd been scanned from
// a raw capture, writing the same report sinks Run does.
func ReplayJSON(opts ReplayJSONOptions) (cme.AnalysisResult, error) {
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

	jsonFile, err := os.Open(opts.JsonFile)
	if err != nil {
		return result, fmt.Errorf("opening json file: %w", err)
	}
	defer jsonFile.Close()

	dispatcher := cme.NewDispatcher(registry, opts.MinDepth)
	var parser fastjson.Parser

	scanner := bufio.NewScanner(jsonFile)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var packetTS int64
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		val, err := parser.ParseBytes(line)
		if err != nil {
			continue // malformed line, skip
		}

		ts := val.GetInt64("packet_ts")
		if ts != packetTS {
			packetTS = ts
			dispatcher.BeginPacket(ts)
		}

		switch cme.TemplateID(val.GetUint("template_id")) {
		case cme.TemplateBookRefresh:
			var header cme.CmeBookRefresh
			if err := header.Fill_Json(val); err != nil {
				continue
			}
			entries := cme.BookEntriesFromJson(val)
			if err := dispatcher.OnBookRefresh(&header, entries); err != nil {
				continue
			}
		case cme.TemplateTradeSummary:
			var header cme.CmeTradeSummary
			if err := header.Fill_Json(val); err != nil {
				continue
			}
			trades := cme.TradeEntriesFromJson(val)
			orders := cme.OrderEntriesFromJson(val)
			if err := dispatcher.OnTradeSummary(&header, trades, orders); err != nil {
				continue
			}
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return result, fmt.Errorf("reading json file: %w", err)
	}

	result = dispatcher.Finish()
	genericOpts := Options{
		SweepsCSV:   opts.SweepsCSV,
		IcebergsCSV: opts.IcebergsCSV,
		StopsCSV:    opts.StopsCSV,
		DuckDBFile:  opts.DuckDBFile,
	}
	if err := writeReports(result, genericOpts); err != nil {
		return result, err
	}
	return result, nil
}
