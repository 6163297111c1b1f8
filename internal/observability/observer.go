// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// StandardObserver implements observability for all components
type StandardObserver struct {
	level  ObservabilityLevel
	logger *logrus.Logger
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component writing JSON lines to writer
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	switch level {
	case ObservabilityOff:
		logger.SetLevel(logrus.ErrorLevel)
	case ObservabilityMetrics:
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.DebugLevel)
	}

	return &StandardObserver{
		level:  level,
		logger: logger,
	}
}

// NewObserverWithLogger wraps an existing logrus logger, e.g. the host's.
func NewObserverWithLogger(level ObservabilityLevel, logger *logrus.Logger) *StandardObserver {
	return &StandardObserver{level: level, logger: logger}
}

// Logger returns the underlying logger
func (o *StandardObserver) Logger() *logrus.Logger {
	return o.logger
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, target string) func(success bool, metadata map[string]interface{}) {
	if o == nil {
		return func(bool, map[string]interface{}) {}
	}
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			Target:     target,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs operation data. Operations are debug-level noise.
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level != ObservabilityDebug {
		return
	}

	fields := logrus.Fields{
		"component":   data.Component,
		"operation":   data.Operation,
		"success":     data.Success,
		"duration_ms": data.DurationMs,
	}
	if data.Target != "" {
		fields["target"] = data.Target
	}
	if data.ContentLength > 0 {
		fields["content_length"] = data.ContentLength
	}
	if data.MatchCount > 0 {
		fields["match_count"] = data.MatchCount
	}
	for k, v := range data.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	if data.Error != "" {
		entry.WithField("error", data.Error).Debug("operation failed")
		return
	}
	entry.Debug("operation completed")
}

// Warn reports a recovered condition. It is emitted unless observability is off.
// A nil observer is silent.
func (o *StandardObserver) Warn(component, message string, fields map[string]interface{}) {
	if o == nil || o.level == ObservabilityOff {
		return
	}
	o.logger.WithField("component", component).WithFields(fields).Warn(message)
}

// Debug logs a detail when debugging is enabled
func (o *StandardObserver) Debug(component, message string, fields map[string]interface{}) {
	if o == nil || o.level != ObservabilityDebug {
		return
	}
	o.logger.WithField("component", component).WithFields(fields).Debug(message)
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component     string                 `json:"component"`
	Operation     string                 `json:"operation"`
	Target        string                 `json:"target,omitempty"`
	DurationMs    int64                  `json:"duration_ms,omitempty"`
	Success       bool                   `json:"success"`
	Error         string                 `json:"error,omitempty"`
	ContentLength int                    `json:"content_length,omitempty"`
	MatchCount    int                    `json:"match_count,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}
