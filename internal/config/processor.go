// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"

	"ctxcopy/internal/observability"
	"ctxcopy/internal/pii"
	"ctxcopy/internal/redactors"
)

// DefaultCacheSize is how many snapshot versions a Processor remembers
const DefaultCacheSize = 50

// Snapshot is one immutable view of the raw settings. A new Version means new Values.
type Snapshot struct {
	Version uint64
	Values  map[string]interface{}
}

// rawSettings mirrors the user-facing settings keys. Pointer fields tell an
// absent key apart from an explicit zero value.
type rawSettings struct {
	Enabled             *bool                  `mapstructure:"enabled"`
	Mode                string                 `mapstructure:"mode"`
	Strategy            string                 `mapstructure:"strategy"`
	Preset              string                 `mapstructure:"preset"`
	DenyList            []string               `mapstructure:"denyList"`
	AllowList           []string               `mapstructure:"allowList"`
	Types               map[string]bool        `mapstructure:"types"`
	ShowIndicator       *bool                  `mapstructure:"showIndicator"`
	IncludeStats        *bool                  `mapstructure:"includeStats"`
	CustomPatterns      []CustomPattern        `mapstructure:"customPatterns"`
	ConfidenceThreshold *float64               `mapstructure:"confidenceThreshold"`
	Extra               map[string]interface{} `mapstructure:",remain"`
}

// Processor turns settings snapshots into MaskingConfig values and memoizes
// the result per snapshot version. Safe for concurrent use.
type Processor struct {
	mu       sync.Mutex
	entries  map[uint64]*MaskingConfig
	order    []uint64
	capacity int
	observer *observability.StandardObserver
}

// NewProcessor creates a processor remembering up to capacity versions (<= 0 uses DefaultCacheSize).
func NewProcessor(capacity int) *Processor {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Processor{
		entries:  make(map[uint64]*MaskingConfig),
		capacity: capacity,
	}
}

// GetComponentName returns the component name for observability
func (p *Processor) GetComponentName() string {
	return "config_processor"
}

// SetObserver sets the observability component
func (p *Processor) SetObserver(observer *observability.StandardObserver) {
	p.observer = observer
}

// GetMaskingConfig returns the effective configuration for s. The same
// version always yields the same pointer until it is evicted or Clear is
// called. Settings that cannot be decoded fall back to the defaults.
func (p *Processor) GetMaskingConfig(s Snapshot) *MaskingConfig {
	p.mu.Lock()
	if cfg, ok := p.entries[s.Version]; ok {
		p.mu.Unlock()
		return cfg
	}
	p.mu.Unlock()

	cfg, err := Process(s.Values)
	if err != nil {
		merr := redactors.NewMaskingError(redactors.ErrorConfiguration,
			"settings could not be decoded, using defaults", p.GetComponentName(), err)
		fields := merr.Fields()
		fields["version"] = s.Version
		p.observer.Warn(p.GetComponentName(), merr.Message, fields)
		cfg = DefaultMaskingConfig()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// another caller may have populated the entry meanwhile
	if existing, ok := p.entries[s.Version]; ok {
		return existing
	}
	if len(p.order) >= p.capacity {
		oldest := p.order[0]
		p.order = p.order[1:]
		delete(p.entries, oldest)
	}
	p.entries[s.Version] = cfg
	p.order = append(p.order, s.Version)
	return cfg
}

// Clear drops every memoized configuration
func (p *Processor) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[uint64]*MaskingConfig)
	p.order = nil
}

// Len reports how many versions are memoized
func (p *Processor) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Process merges raw settings over the defaults. Unknown keys and unknown
// type names are ignored. The preset is recorded but not applied; see ApplyPreset.
func Process(values map[string]interface{}) (*MaskingConfig, error) {
	var raw rawSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, fmt.Errorf("creating settings decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("decoding masking settings: %w", err)
	}

	cfg := DefaultMaskingConfig()
	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.Mode != "" {
		cfg.Mode = pii.ParseMode(raw.Mode)
	}
	if raw.Strategy != "" {
		cfg.Strategy = redactors.ParseMaskingStrategy(raw.Strategy)
	}
	if raw.Preset != "" {
		cfg.Preset = ParsePreset(raw.Preset)
	}
	if raw.ShowIndicator != nil {
		cfg.ShowIndicator = *raw.ShowIndicator
	}
	if raw.IncludeStats != nil {
		cfg.IncludeStats = *raw.IncludeStats
	}
	if raw.ConfidenceThreshold != nil {
		cfg.ConfidenceThreshold = clampUnit(*raw.ConfidenceThreshold)
	}

	cfg.DenyList = normalizeList(raw.DenyList)
	cfg.AllowList = normalizeList(raw.AllowList)

	for name, on := range raw.Types {
		if t, ok := pii.ParseType(name); ok {
			cfg.Types[t] = on
		}
	}

	for _, cp := range raw.CustomPatterns {
		cp.Name = strings.TrimSpace(cp.Name)
		if cp.Pattern == "" {
			continue
		}
		cfg.CustomPatterns = append(cfg.CustomPatterns, cp)
	}

	return cfg, nil
}

func normalizeList(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
