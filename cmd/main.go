// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"ctxcopy/internal/config"
	"ctxcopy/internal/core"
	"ctxcopy/internal/formatters"
	_ "ctxcopy/internal/formatters/csv"
	_ "ctxcopy/internal/formatters/json"
	_ "ctxcopy/internal/formatters/text"
	_ "ctxcopy/internal/formatters/yaml"
	"ctxcopy/internal/help"
	"ctxcopy/internal/observability"
	"ctxcopy/internal/parallel"
	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/preprocessors"
	"ctxcopy/internal/version"
)

// Exit codes
const (
	exitOK         = 0
	exitFailures   = 1
	exitUsageError = 2
)

// stdinName labels stdin in reports
const stdinName = "<stdin>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if topic, ok := helpTopic(args); ok {
		h := help.NewSystem(stdout, !isTerminal(stdout))
		switch {
		case topic == "":
			h.ShowGeneralHelp()
		case strings.EqualFold(topic, "types"):
			h.ShowTypesHelp()
		case !h.ShowTypeHelp(topic):
			return exitUsageError
		}
		return exitOK
	}

	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsageError
	}

	if flags.showVersion {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	cfg := loadConfiguration(flags.configFile, stderr)

	if flags.listProfiles {
		printProfiles(cfg, stdout)
		return exitOK
	}

	final, err := resolveConfiguration(cfg, flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}
	if _, ok := formatters.Get(final.format); !ok && !flags.maskedOnly {
		fmt.Fprintf(stderr, "Error: unsupported format '%s'. Available formats: %s\n", final.format, strings.Join(formatters.List(), ", "))
		return exitUsageError
	}

	level := observability.ObservabilityOff
	if final.debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, stderr)

	metrics := performance.NewMetrics()
	engine := core.NewEngine(core.Options{Metrics: metrics, Observer: observer})

	manager := preprocessors.NewDefaultManager(nil)
	manager.SetObserver(observer)

	var reports []formatters.FileReport
	if paths := flags.inputPaths(); len(paths) > 0 {
		reports, err = maskFiles(engine, manager, paths, flags, final, stderr)
	} else {
		reports, err = maskStdin(engine, stdin, final)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}

	if flags.outputDir != "" {
		if err := writeMaskedCopies(flags.outputDir, reports); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailures
		}
	}

	out := stdout
	if flags.outputFile != "" {
		file, err := os.OpenFile(flags.outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating output file: %v\n", err)
			return exitFailures
		}
		defer file.Close()
		out = file
	}

	if flags.maskedOnly {
		writeMaskedText(out, reports)
	} else {
		options := formatters.FormatterOptions{
			ConfidenceLevel: core.ParseConfidenceLevels(flags.confidenceLevels),
			Verbose:         final.verbose,
			NoColor:         final.noColor || flags.outputFile != "" || !isTerminal(stdout),
			ShowOriginal:    flags.showOriginal,
			ShowMasked:      flags.outputDir == "",
		}
		report, err := formatters.Export(final.format, reports, options)
		if err != nil {
			fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
			return exitFailures
		}
		fmt.Fprint(out, report)
		if !strings.HasSuffix(report, "\n") {
			fmt.Fprintln(out)
		}
	}

	printIndicator(stderr, reports, final.masking)

	// Original values are no longer needed once the report is written
	for i := range reports {
		for j := range reports[i].Result.Detections {
			reports[i].Result.Detections[j].Clear()
		}
	}

	if flags.stats {
		summary, err := metrics.Summary()
		if err != nil {
			fmt.Fprintf(stderr, "Error gathering statistics: %v\n", err)
		} else {
			fmt.Fprintln(stderr, summary)
		}
	}

	for _, r := range reports {
		if r.Error != nil {
			return exitFailures
		}
	}
	return exitOK
}

// helpTopic finds --help and the optional topic that follows it
func helpTopic(args []string) (string, bool) {
	for i, arg := range args {
		switch arg {
		case "-h", "-help", "--help":
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				return args[i+1], true
			}
			return "", true
		}
	}
	return "", false
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string, stderr io.Writer) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
		cfg = config.LoadConfigOrDefault("")
	}
	return cfg
}

func printProfiles(cfg *config.Config, w io.Writer) {
	names := cfg.ListProfiles()
	if len(names) == 0 {
		fmt.Fprintln(w, "No profiles defined.")
		return
	}
	fmt.Fprintln(w, "Available profiles:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, cfg.GetProfile(name).Description)
	}
}

func maskStdin(engine *core.Engine, stdin io.Reader, final *resolved) ([]formatters.FileReport, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	result := engine.MaskDocument(string(data), final.masking, final.inputFormat)
	return []formatters.FileReport{{Filename: stdinName, Processor: "stdin", Result: result}}, nil
}

func maskFiles(engine *core.Engine, manager *preprocessors.PreprocessorManager, paths []string, flags *cliFlags, final *resolved, stderr io.Writer) ([]formatters.FileReport, error) {
	files, err := collectFiles(paths, flags.recursive, manager)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no supported input files found")
	}

	workers := final.workers
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}

	fileCfg := core.FileConfig{
		Masking:       final.masking,
		Format:        final.inputFormat,
		Workers:       workers,
		Preprocessors: manager,
	}
	if final.verbose && len(files) > 1 && isTerminal(stderr) {
		fileCfg.Progress = func(completed, total int, filePath string) {
			fmt.Fprintf(stderr, "\r[%d/%d] %s\033[K", completed, total, filePath)
			if completed == total {
				fmt.Fprintln(stderr)
			}
		}
	}

	result, err := engine.MaskFiles(context.Background(), files, fileCfg)
	if err != nil {
		return nil, err
	}

	reports := make([]formatters.FileReport, len(result.Files))
	for i, f := range result.Files {
		reports[i] = formatters.FileReport{
			Filename:  f.FilePath,
			Processor: f.Processor,
			Result:    f.Result,
			Error:     f.Error,
		}
	}
	return reports, nil
}

func writeMaskedCopies(dir string, reports []formatters.FileReport) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, r := range reports {
		if r.Error != nil {
			continue
		}
		name := r.Filename
		if name == stdinName {
			name = "stdin.txt"
		}
		path := maskedCopyPath(dir, name, r.Processor)
		if err := os.WriteFile(path, []byte(r.Result.MaskedText), 0o600); err != nil {
			return fmt.Errorf("writing masked copy %s: %w", path, err)
		}
	}
	return nil
}

func writeMaskedText(w io.Writer, reports []formatters.FileReport) {
	for _, r := range reports {
		if r.Error != nil {
			continue
		}
		if len(reports) > 1 {
			fmt.Fprintf(w, "==> %s <==\n", r.Filename)
		}
		fmt.Fprint(w, r.Result.MaskedText)
		if len(reports) > 1 && !strings.HasSuffix(r.Result.MaskedText, "\n") {
			fmt.Fprintln(w)
		}
	}
}

// printIndicator writes the masking notice: a count, plus per-type counts when stats are enabled
func printIndicator(w io.Writer, reports []formatters.FileReport, cfg *config.MaskingConfig) {
	if cfg == nil || !cfg.ShowIndicator {
		return
	}

	counts := make(map[pii.Type]int)
	total := 0
	for _, r := range reports {
		for _, d := range r.Result.Detections {
			counts[d.Type]++
			total++
		}
	}
	if total == 0 {
		return
	}

	line := fmt.Sprintf("ctxcopy: masked %d item(s)", total)
	if cfg.IncludeStats {
		types := make([]string, 0, len(counts))
		for t := range counts {
			types = append(types, t.String())
		}
		sort.Strings(types)
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = fmt.Sprintf("%s: %d", t, counts[pii.Type(t)])
		}
		line += " (" + strings.Join(parts, ", ") + ")"
	}
	fmt.Fprintln(w, line)
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
