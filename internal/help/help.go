// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"ctxcopy/internal/config"
	"ctxcopy/internal/patterns"
	"ctxcopy/internal/pii"
)

// System renders CLI help
type System struct {
	out    io.Writer
	colors map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	colors := map[string]*color.Color{
		"title":    color.New(color.FgWhite, color.Bold),
		"header":   color.New(color.FgBlue, color.Bold),
		"emphasis": color.New(color.FgWhite, color.Bold),
		"positive": color.New(color.FgGreen),
		"negative": color.New(color.FgRed),
		"example":  color.New(color.FgMagenta),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}
	return &System{out: out, colors: colors}
}

func (h *System) println(name string, a ...interface{}) {
	h.colors[name].Fprintln(h.out, a...)
}

// ShowGeneralHelp displays usage, options and examples
func (h *System) ShowGeneralHelp() {
	h.println("title", "ctxcopy - PII detection and masking")
	fmt.Fprintln(h.out, "===================================")
	fmt.Fprintln(h.out)
	h.println("header", "USAGE:")
	fmt.Fprintln(h.out, "  ctxcopy [options] [file ...]")
	fmt.Fprintln(h.out, "  <command> | ctxcopy [options]")
	fmt.Fprintln(h.out)

	h.println("header", "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<paths>\tComma-separated files, directories or glob patterns (stdin when omitted)")
	fmt.Fprintln(w, "  --recursive\t\tRecursively walk directories")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles")
	fmt.Fprintln(w, "  --input-format\t<format>\tDocument format: auto, text, json, xml, csv (default: auto)")
	fmt.Fprintln(w, "  --format\t<format>\tReport format: text, json, yaml, csv (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tWrite the report to a file instead of stdout")
	fmt.Fprintln(w, "  --output-dir\t<path>\tWrite a masked copy of every input into this directory")
	fmt.Fprintln(w, "  --masked-only\t\tPrint only the masked text, no report")
	fmt.Fprintln(w, "  --preset\t<name>\tType preset: "+presetNames())
	fmt.Fprintln(w, "  --strategy\t<name>\tMasking strategy: partial, full, structural, hash, redact (default: partial)")
	fmt.Fprintln(w, "  --mode\t<name>\tDetection mode: auto, manual, strict (default: auto)")
	fmt.Fprintln(w, "  --threshold\t<0-1>\tBase confidence threshold before adaptive adjustment (default: 0.7)")
	fmt.Fprintln(w, "  --types\t<types>\tComma-separated PII types to mask, or 'all'")
	fmt.Fprintln(w, "  --confidence\t<levels>\tConfidence levels to report: high,medium,low,all (default: all)")
	fmt.Fprintln(w, "  --show-original\t\tInclude unmasked values in the report")
	fmt.Fprintln(w, "  --workers\t<n>\tFiles masked in parallel")
	fmt.Fprintln(w, "  --verbose\t\tDisplay detailed information for each detection")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging on stderr")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --stats\t\tPrint masking counters to stderr when done")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help types\t\tList all PII types")
	fmt.Fprintln(w, "  --help <type>\t\tShow detailed help for one PII type")
	w.Flush()

	fmt.Fprintln(h.out)
	h.println("header", "EXAMPLES:")
	h.println("example", "  pbpaste | ctxcopy --masked-only | pbcopy")
	h.println("example", "  ctxcopy --file customers.csv --format json")
	h.println("example", "  ctxcopy --file ./exports --recursive --output-dir ./masked --preset financial")
	h.println("example", "  ctxcopy --profile share --file ticket.txt")

	fmt.Fprintln(h.out)
	h.println("header", "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Project config: ctxcopy.yaml or .ctxcopy.yaml (in current directory)")
	fmt.Fprintln(h.out, "  User config: <user config dir>/ctxcopy/config.yaml")
	fmt.Fprintln(h.out, "  Environment: CTXCOPY_CONFIG_DIR - Override config directory")
}

// ShowTypesHelp lists every PII type with its default enablement
func (h *System) ShowTypesHelp() {
	h.println("title", "PII types")
	fmt.Fprintln(h.out, "=========")
	fmt.Fprintln(h.out)

	defaults := config.DefaultTypes()
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  TYPE\tDEFAULT\tPRESETS")
	fmt.Fprintln(w, "  ----\t-------\t-------")
	for _, t := range pii.AllTypes() {
		enabled := "off"
		if defaults[t] {
			enabled = "on"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", t, enabled, strings.Join(presetsContaining(t), ", "))
	}
	w.Flush()

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "For detailed information about a specific type, use:")
	h.println("example", "  ctxcopy --help email")
}

// ShowTypeHelp displays detailed help for one type. Returns false if the type is unknown.
func (h *System) ShowTypeHelp(name string) bool {
	t, ok := pii.ParseType(name)
	if !ok {
		h.colors["negative"].Fprintf(h.out, "Error: PII type '%s' not found.\n", name)
		fmt.Fprintln(h.out, "Use 'ctxcopy --help types' to see a list of available types.")
		return false
	}

	h.colors["title"].Fprintf(h.out, "%s\n", t)
	fmt.Fprintln(h.out, strings.Repeat("=", len(t.String())))
	fmt.Fprintln(h.out)

	h.println("header", "DEFAULT:")
	if config.DefaultTypes()[t] {
		h.println("positive", "  enabled")
	} else {
		h.println("negative", "  disabled (enable with --types or a preset)")
	}

	fmt.Fprintln(h.out)
	h.println("header", "PATTERN:")
	if re, ok := patterns.GetPattern(t); ok {
		fmt.Fprintf(h.out, "  %s\n", re.String())
	} else {
		fmt.Fprintln(h.out, "  defined by customPatterns in the configuration file")
	}

	fmt.Fprintln(h.out)
	h.println("header", "PRESETS:")
	if presets := presetsContaining(t); len(presets) > 0 {
		fmt.Fprintf(h.out, "  %s\n", strings.Join(presets, ", "))
	} else {
		fmt.Fprintln(h.out, "  none")
	}
	return true
}

func presetsContaining(t pii.Type) []string {
	var names []string
	for _, p := range config.OverlayPresets() {
		for _, member := range config.PresetTypes(p) {
			if member == t {
				names = append(names, string(p))
				break
			}
		}
	}
	return names
}

func presetNames() string {
	var names []string
	for _, p := range config.OverlayPresets() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
