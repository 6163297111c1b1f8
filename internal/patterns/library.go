// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package patterns holds the PII pattern library. Definitions stay inert until
// first requested and are compiled once per type.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"ctxcopy/internal/performance"
	"ctxcopy/internal/pii"
)

// MatchNothing is the pattern used in place of a custom pattern that failed to compile.
const MatchNothing = `[^\x00-\x{10FFFF}]`

var matchNothing = regexp.MustCompile(MatchNothing)

// Compiled pairs a type with its compiled matcher
type Compiled struct {
	Type   pii.Type
	Regexp *regexp.Regexp
}

// Library is a memoizing pattern compiler. The zero value is not usable; use NewLibrary.
type Library struct {
	mu       sync.RWMutex
	compiled map[pii.Type]*regexp.Regexp
	custom   map[string]*regexp.Regexp
	group    singleflight.Group
	metrics  *performance.Metrics
}

// NewLibrary creates an empty library that records compilations on metrics (nil uses performance.Default).
func NewLibrary(metrics *performance.Metrics) *Library {
	if metrics == nil {
		metrics = performance.Default
	}
	return &Library{
		compiled: make(map[pii.Type]*regexp.Regexp),
		custom:   make(map[string]*regexp.Regexp),
		metrics:  metrics,
	}
}

// Get returns the compiled pattern for t, compiling it on first use.
// Types without a definition report false.
func (l *Library) Get(t pii.Type) (*regexp.Regexp, bool) {
	def, ok := definitions[t]
	if !ok {
		return nil, false
	}

	l.mu.RLock()
	re, ok := l.compiled[t]
	l.mu.RUnlock()
	if ok {
		return re, true
	}

	v, _, _ := l.group.Do("builtin:"+string(t), func() (interface{}, error) {
		l.mu.RLock()
		existing, ok := l.compiled[t]
		l.mu.RUnlock()
		if ok {
			return existing, nil
		}

		// built-in sources are fixed literals and covered by tests
		compiled := regexp.MustCompile(def.expression())
		l.metrics.PatternCompiles.WithLabelValues(string(t)).Inc()

		l.mu.Lock()
		l.compiled[t] = compiled
		l.mu.Unlock()
		return compiled, nil
	})
	return v.(*regexp.Regexp), true
}

// Enabled returns the compiled patterns for every enabled type that has a
// definition. Disabled types are filtered before compilation.
func (l *Library) Enabled(enabled map[pii.Type]bool) map[pii.Type]*regexp.Regexp {
	out := make(map[pii.Type]*regexp.Regexp)
	for t, on := range enabled {
		if !on {
			continue
		}
		if re, ok := l.Get(t); ok {
			out[t] = re
		}
	}
	return out
}

// EnabledInOrder is Enabled in canonical type order, which is the order
// overlapping matches are resolved in.
func (l *Library) EnabledInOrder(enabled map[pii.Type]bool) []Compiled {
	var out []Compiled
	for _, t := range pii.AllTypes() {
		if !enabled[t] {
			continue
		}
		if re, ok := l.Get(t); ok {
			out = append(out, Compiled{Type: t, Regexp: re})
		}
	}
	return out
}

// CompileCustom compiles a user-supplied pattern. A pattern written as a
// literal ("/body/flags") has its flags honoured. On failure the returned
// matcher matches nothing and the error describes why.
func (l *Library) CompileCustom(source string) (*regexp.Regexp, error) {
	l.mu.RLock()
	re, ok := l.custom[source]
	l.mu.RUnlock()
	if ok {
		return re, nil
	}

	v, err, _ := l.group.Do("custom:"+source, func() (interface{}, error) {
		compiled, err := regexp.Compile(parseLiteral(source).expression())
		if err != nil {
			l.metrics.InvalidCustomRules.Inc()
			return nil, fmt.Errorf("compiling custom pattern: %w", err)
		}

		l.mu.Lock()
		l.custom[source] = compiled
		l.mu.Unlock()
		return compiled, nil
	})
	if err != nil {
		return matchNothing, err
	}
	return v.(*regexp.Regexp), nil
}

// Clear drops every compiled pattern
func (l *Library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.compiled = make(map[pii.Type]*regexp.Regexp)
	l.custom = make(map[string]*regexp.Regexp)
}

// CompiledCount reports how many built-in patterns are currently compiled
func (l *Library) CompiledCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.compiled)
}

func (d Definition) expression() string {
	var flags string
	for _, f := range "ims" {
		if strings.ContainsRune(d.Flags, f) {
			flags += string(f)
		}
	}
	if flags == "" {
		return d.Source
	}
	return "(?" + flags + ")" + d.Source
}

// parseLiteral splits "/body/flags" into a Definition. Anything else is taken verbatim.
func parseLiteral(source string) Definition {
	if len(source) < 2 || source[0] != '/' {
		return Definition{Source: source}
	}
	end := strings.LastIndexByte(source, '/')
	if end == 0 {
		return Definition{Source: source}
	}
	flags := source[end+1:]
	if strings.Trim(flags, "gimsuy") != "" {
		return Definition{Source: source}
	}
	return Definition{Source: source[1:end], Flags: flags}
}

var defaultLibrary = NewLibrary(nil)

// Default returns the process-wide library
func Default() *Library {
	return defaultLibrary
}

// GetPattern returns the compiled pattern for t from the process-wide library.
func GetPattern(t pii.Type) (*regexp.Regexp, bool) {
	return defaultLibrary.Get(t)
}

// GetEnabledPatterns compiles only the enabled types.
func GetEnabledPatterns(enabled map[pii.Type]bool) map[pii.Type]*regexp.Regexp {
	return defaultLibrary.Enabled(enabled)
}

// GetAllTypes lists every type with a pattern definition, in canonical order.
func GetAllTypes() []pii.Type {
	var out []pii.Type
	for _, t := range pii.AllTypes() {
		if _, ok := definitions[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// HasPattern reports whether t has a definition.
func HasPattern(t pii.Type) bool {
	_, ok := definitions[t]
	return ok
}

// ClearCache resets the process-wide library. Intended for tests.
func ClearCache() {
	defaultLibrary.Clear()
}
