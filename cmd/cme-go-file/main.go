// Copyright (c) 2025 Neomantra Corp

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/neomantra/ymdflag"
	"github.com/relvacode/iso8601"
	"github.com/spf13/cobra"

	cme_analyze "github.com/NimbleMarkets/cme-go/internal/analyze"
	cme_file "github.com/NimbleMarkets/cme-go/internal/file"
)

///////////////////////////////////////////////////////////////////////////////

var (
	symbolFile string // cme_ids.txt-formatted symbol-to-sec_id file

	duckdbFile string

	minDepth int64

	forceZstdInput = false
	sinceArg       string
	untilArg       string
	dateArg        string // YYYYMMDD, restricts the run to one UTC trading day

	summarize      bool
	assumeYes      bool
)

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

// requireHumanConfirmation prompts before an overwrite, unless --yes was
// passed or none of the output paths exist yet.
func requireHumanConfirmation(paths []string) {
	if assumeYes {
		return
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return
	}

	doOverwrite := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Affirmative("Yes, overwrite").
				Negative("No, cancel").
				Title(fmt.Sprintf("%v already exist(s). Overwrite?", existing)).
				Value(&doOverwrite),
		))
	if err := form.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "confirmation error: %s\n", err.Error())
		os.Exit(1)
	}
	if !doOverwrite {
		os.Exit(0)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize()

	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&symbolFile, "symbols", "s", "", "Symbol file (required)")
	analyzeCmd.MarkFlagRequired("symbols")
	analyzeCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")
	analyzeCmd.Flags().StringVar(&sinceArg, "since", "", "ISO8601 lower bound on capture timestamp")
	analyzeCmd.Flags().StringVar(&untilArg, "until", "", "ISO8601 upper bound on capture timestamp")
	analyzeCmd.Flags().StringVar(&dateArg, "date", "", "Restrict to this UTC trading day (YYYYMMDD)")
	analyzeCmd.Flags().Int64Var(&minDepth, "min-depth", 0, "Price distance a sweep must exceed (end vs start price) to be reported")
	analyzeCmd.Flags().StringVar(&duckdbFile, "duckdb", "", "Also write results to this DuckDB file")
	analyzeCmd.Flags().BoolVar(&summarize, "summary", false, "Print a human-readable summary to stderr")
	analyzeCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Don't prompt before overwriting existing output files")

	rootCmd.AddCommand(jsonCmd)
	jsonCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	rootCmd.AddCommand(replayJsonCmd)
	replayJsonCmd.Flags().StringVarP(&symbolFile, "symbols", "s", "", "Symbol file (required)")
	replayJsonCmd.MarkFlagRequired("symbols")
	replayJsonCmd.Flags().Int64Var(&minDepth, "min-depth", 0, "Price distance a sweep must exceed (end vs start price) to be reported")
	replayJsonCmd.Flags().StringVar(&duckdbFile, "duckdb", "", "Also write results to this DuckDB file")
	replayJsonCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Don't prompt before overwriting existing output files")

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "cme-go-file",
	Short: "cme-go-file analyzes CME MDP 3.0 packet captures",
	Long:  "cme-go-file analyzes CME MDP 3.0 packet captures for sweeps, icebergs, and stop runs",
}

///////////////////////////////////////////////////////////////////////////////

var analyzeCmd = &cobra.Command{
	Use:   "analyze capture_file sweeps.csv icebergs.csv stops.csv",
	Short: "Analyzes a capture file, writing sweep/iceberg/stop reports",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cme_analyze.Options{
			CaptureFile:    args[0],
			SymbolFile:     symbolFile,
			SweepsCSV:      args[1],
			IcebergsCSV:    args[2],
			StopsCSV:       args[3],
			DuckDBFile:     duckdbFile,
			ForceZstdInput: forceZstdInput,
			MinDepth:       minDepth,
		}

		if sinceArg != "" {
			t, err := iso8601.ParseString(sinceArg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: --since: %s\n", err.Error())
				os.Exit(1)
			}
			opts.Since = &t
		}
		if untilArg != "" {
			t, err := iso8601.ParseString(untilArg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: --until: %s\n", err.Error())
				os.Exit(1)
			}
			opts.Until = &t
		}
		if dateArg != "" {
			dayStart, err := time.ParseInLocation("20060102", dateArg, time.UTC)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: --date: %s\n", err.Error())
				os.Exit(1)
			}
			dayEnd := dayStart.Add(24 * time.Hour)
			opts.Since = &dayStart
			opts.Until = &dayEnd
		}

		requireHumanConfirmation([]string{opts.SweepsCSV, opts.IcebergsCSV, opts.StopsCSV})

		result, err := cme_analyze.Run(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
			os.Exit(1)
		}

		if summarize {
			var dayLabel string
			if opts.Since != nil {
				dayLabel = fmt.Sprintf(" (%d)", ymdflag.TimeToYMD(*opts.Since))
			}
			fmt.Fprintf(os.Stderr, "packets: %s   messages: %s   sweeps: %s   icebergs: %s   stops: %s%s\n",
				humanize.Comma(int64(result.PacketsProcessed)),
				humanize.Comma(int64(result.MessagesProcessed)),
				humanize.Comma(int64(len(result.Sweeps))),
				humanize.Comma(int64(len(result.Icebergs))),
				humanize.Comma(int64(len(result.Stops))),
				dayLabel,
			)
		}
	},
}

///////////////////////////////////////////////////////////////////////////////

var jsonCmd = &cobra.Command{
	Use:   "json file...",
	Short: "Prints the specified capture file's decoded messages as JSON lines",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := cme_file.WriteCaptureAsJson(sourceFile, forceZstdInput, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "error: decoding %s: %s\n", sourceFile, err.Error())
			}
		}
	},
}

///////////////////////////////////////////////////////////////////////////////

var replayJsonCmd = &cobra.Command{
	Use:   "replay-json json_file sweeps.csv icebergs.csv stops.csv",
	Short: "Replays a decoded-message JSON-lines file through the analyzer",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cme_analyze.ReplayJSONOptions{
			JsonFile:    args[0],
			SymbolFile:  symbolFile,
			SweepsCSV:   args[1],
			IcebergsCSV: args[2],
			StopsCSV:    args[3],
			DuckDBFile:  duckdbFile,
			MinDepth:    minDepth,
		}

		requireHumanConfirmation([]string{opts.SweepsCSV, opts.IcebergsCSV, opts.StopsCSV})

		if _, err := cme_analyze.ReplayJSON(opts); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}
