// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"ctxcopy/internal/config"
	"ctxcopy/internal/core"
)

// cliFlags holds command line flag values
type cliFlags struct {
	inputFiles       string
	configFile       string
	profileName      string
	listProfiles     bool
	format           string
	inputFormat      string
	outputFile       string
	outputDir        string
	preset           string
	strategy         string
	mode             string
	threshold        float64
	types            string
	confidenceLevels string
	showOriginal     bool
	maskedOnly       bool
	recursive        bool
	workers          int
	verbose          bool
	debug            bool
	noColor          bool
	stats            bool
	showVersion      bool

	set  map[string]bool
	args []string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("ctxcopy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.inputFiles, "file", "", "Comma-separated input files or directories (stdin when omitted)")
	fs.StringVar(&f.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&f.profileName, "profile", "", "Profile name to use from config file")
	fs.BoolVar(&f.listProfiles, "list-profiles", false, "List available profiles in config file")
	fs.StringVar(&f.format, "format", "", "Report format: text, json, yaml, csv (default: text)")
	fs.StringVar(&f.inputFormat, "input-format", "auto", "Document format: auto, text, json, xml, csv")
	fs.StringVar(&f.outputFile, "output", "", "Write the report to this file instead of stdout")
	fs.StringVar(&f.outputDir, "output-dir", "", "Write a masked copy of every input into this directory")
	fs.StringVar(&f.preset, "preset", "", "Type preset: basic, financial, healthcare, enterprise, privacy, strict")
	fs.StringVar(&f.strategy, "strategy", "", "Masking strategy: partial, full, structural, hash, redact")
	fs.StringVar(&f.mode, "mode", "", "Detection mode: auto, manual, strict")
	fs.Float64Var(&f.threshold, "threshold", config.DefaultConfidenceThreshold, "Base confidence threshold (0-1)")
	fs.StringVar(&f.types, "types", "", "Comma-separated PII types to mask, or 'all'")
	fs.StringVar(&f.confidenceLevels, "confidence", "", "Confidence levels to report: high, medium, low, or combinations like 'high,medium'")
	fs.BoolVar(&f.showOriginal, "show-original", false, "Include unmasked values in the report")
	fs.BoolVar(&f.maskedOnly, "masked-only", false, "Print only the masked text, no report")
	fs.BoolVar(&f.recursive, "recursive", false, "Recursively walk directories")
	fs.IntVar(&f.workers, "workers", 0, "Number of files masked in parallel (default from config)")
	fs.BoolVar(&f.verbose, "verbose", false, "Display detailed information for each detection")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging on stderr")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&f.stats, "stats", false, "Print masking counters to stderr when done")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	f.args = fs.Args()
	return f, nil
}

// inputPaths combines --file entries with positional arguments
func (f *cliFlags) inputPaths() []string {
	var paths []string
	for _, p := range strings.Split(f.inputFiles, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return append(paths, f.args...)
}

// resolved holds the final settings after config file, profile and flags
type resolved struct {
	masking     *config.MaskingConfig
	format      string
	inputFormat core.Format
	verbose     bool
	debug       bool
	noColor     bool
	workers     int
}

// resolveConfiguration applies precedence: flags over profile over config defaults
func resolveConfiguration(cfg *config.Config, f *cliFlags) (*resolved, error) {
	final := &resolved{
		format:  cfg.Defaults.Format,
		verbose: cfg.Defaults.Verbose,
		debug:   cfg.Defaults.Debug,
		noColor: cfg.Defaults.NoColor,
		workers: cfg.Defaults.Workers,
	}

	if f.profileName != "" {
		if profile := cfg.GetProfile(f.profileName); profile != nil && profile.Format != "" {
			final.format = profile.Format
		}
	}

	values, err := cfg.MaskingSettings(f.profileName)
	if err != nil {
		return nil, err
	}
	if err := applyMaskingFlags(values, f); err != nil {
		return nil, err
	}
	final.masking, err = config.Process(values)
	if err != nil {
		return nil, err
	}

	final.inputFormat, err = core.ParseFormat(f.inputFormat)
	if err != nil {
		return nil, err
	}

	if f.set["format"] {
		final.format = f.format
	}
	if final.format == "" {
		final.format = "text"
	}
	if f.set["verbose"] {
		final.verbose = f.verbose
	}
	if f.set["debug"] {
		final.debug = f.debug
	}
	if f.set["no-color"] {
		final.noColor = f.noColor
	}
	if f.set["workers"] {
		final.workers = f.workers
	}
	return final, nil
}

var (
	validStrategies = map[string]bool{"partial": true, "full": true, "structural": true, "hash": true, "redact": true}
	validModes      = map[string]bool{"auto": true, "manual": true, "strict": true}
)

// applyMaskingFlags lays explicitly set masking flags over the settings map
func applyMaskingFlags(values map[string]interface{}, f *cliFlags) error {
	if f.set["preset"] {
		if p := config.ParsePreset(f.preset); p == config.PresetNone && !strings.EqualFold(f.preset, "none") {
			return fmt.Errorf("unknown preset %q", f.preset)
		}
		values["preset"] = f.preset
	}
	if f.set["strategy"] {
		if !validStrategies[strings.ToLower(f.strategy)] {
			return fmt.Errorf("unknown masking strategy %q", f.strategy)
		}
		values["strategy"] = f.strategy
	}
	if f.set["mode"] {
		if !validModes[strings.ToLower(f.mode)] {
			return fmt.Errorf("unknown mode %q", f.mode)
		}
		values["mode"] = f.mode
	}
	if f.set["threshold"] {
		if f.threshold < 0 || f.threshold > 1 {
			return fmt.Errorf("threshold must be between 0 and 1, got %g", f.threshold)
		}
		values["confidenceThreshold"] = f.threshold
	}
	if f.set["types"] {
		enabled, unknown := core.ParseTypesToMask(strings.Split(f.types, ","))
		if len(unknown) > 0 {
			return fmt.Errorf("unknown PII types: %s", strings.Join(unknown, ", "))
		}
		types := make(map[string]interface{}, len(enabled))
		for t, on := range enabled {
			types[t.String()] = on
		}
		values["types"] = types
	}
	return nil
}
