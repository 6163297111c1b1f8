// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"ctxcopy/internal/pii"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	ConfidenceLevel map[string]bool // Which confidence levels to display
	Verbose         bool            // Whether to display detailed information
	NoColor         bool            // Whether to disable colored output
	ShowOriginal    bool            // Whether to display the unmasked value
	ShowMasked      bool            // Whether to include the masked document text
}

// FileReport is the masking outcome of one input, as handed to a formatter
type FileReport struct {
	Filename  string
	Processor string
	Result    pii.MaskedResult
	Error     error
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the reports in the formatter's output format
	Format(reports []FileReport, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders reports with the named formatter from the default registry
func Export(format string, reports []FileReport, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(reports, options)
}

// ConfidenceLevel buckets a 0-1 confidence score
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "HIGH"
	case confidence >= 0.6:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// AllowsConfidence reports whether a score's bucket is enabled. A nil map allows everything.
func (o FormatterOptions) AllowsConfidence(confidence float64) bool {
	if o.ConfidenceLevel == nil {
		return true
	}
	return o.ConfidenceLevel[strings.ToLower(ConfidenceLevel(confidence))]
}

// FilterDetections keeps the detections whose confidence level is enabled
func FilterDetections(detections []pii.Detection, options FormatterOptions) []pii.Detection {
	var filtered []pii.Detection
	for _, d := range detections {
		if options.AllowsConfidence(d.Confidence) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
