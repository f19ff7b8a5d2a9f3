// Copyright (c) 2025 Neomantra Corp

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	cme_analyze "github.com/NimbleMarkets/cme-go/internal/analyze"
	cme_tui "github.com/NimbleMarkets/cme-go/internal/tui"
)

///////////////////////////////////////////////////////////////////////////////

func main() {
	var captureFile, symbolFile string
	var forceZstdInput bool
	var minDepth int64
	var showHelp bool

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.StringVarP(&captureFile, "capture", "c", "", "Capture file to analyze (required)")
	pflag.StringVarP(&symbolFile, "symbols", "s", "", "Symbol file (required)")
	pflag.BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd")
	pflag.Int64Var(&minDepth, "min-depth", 0, "Price distance a sweep must exceed (end vs start price) to be reported")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [options]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}
	if captureFile == "" || symbolFile == "" {
		fmt.Fprintf(os.Stderr, "missing --capture or --symbols\n")
		os.Exit(1)
	}

	result, err := cme_analyze.Run(cme_analyze.Options{
		CaptureFile:    captureFile,
		SymbolFile:     symbolFile,
		SweepsCSV:      os.DevNull,
		IcebergsCSV:    os.DevNull,
		StopsCSV:       os.DevNull,
		ForceZstdInput: forceZstdInput,
		MinDepth:       minDepth,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}

	if err := cme_tui.Run(cme_tui.Config{Result: result}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}
