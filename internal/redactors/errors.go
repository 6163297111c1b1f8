// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"fmt"
	"time"
)

// MaskingErrorType defines the type of masking error
type MaskingErrorType int

const (
	// ErrorInvalidPattern indicates a custom pattern that failed to compile
	ErrorInvalidPattern MaskingErrorType = iota

	// ErrorLengthInvariant indicates a length-preserving pass changed the length
	ErrorLengthInvariant

	// ErrorUnknownType indicates a lookup for a type that does not exist
	ErrorUnknownType

	// ErrorConfiguration indicates settings that could not be decoded
	ErrorConfiguration
)

// String returns the string representation of the error type
func (met MaskingErrorType) String() string {
	switch met {
	case ErrorInvalidPattern:
		return "invalid_pattern"
	case ErrorLengthInvariant:
		return "length_invariant"
	case ErrorUnknownType:
		return "unknown_type"
	case ErrorConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// MaskingError describes a condition the masking core recovered from.
// It is logged, never returned from a masking entry point.
type MaskingError struct {
	// Type is the type of error
	Type MaskingErrorType

	// Message is the error message
	Message string

	// Component is the component that generated the error
	Component string

	// Recoverable indicates whether processing continued
	Recoverable bool

	// Timestamp is when the error occurred
	Timestamp time.Time

	// Cause is the underlying error that caused this error
	Cause error
}

// Error implements the error interface
func (me *MaskingError) Error() string {
	if me.Cause != nil {
		return fmt.Sprintf("[%s] %s (component: %s): %s", me.Type, me.Message, me.Component, me.Cause)
	}
	return fmt.Sprintf("[%s] %s (component: %s)", me.Type, me.Message, me.Component)
}

// Unwrap returns the underlying error for error unwrapping
func (me *MaskingError) Unwrap() error {
	return me.Cause
}

// Fields renders the error for structured logging
func (me *MaskingError) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"error_type":  me.Type.String(),
		"recoverable": me.Recoverable,
	}
	if me.Cause != nil {
		fields["cause"] = me.Cause.Error()
	}
	return fields
}

// NewMaskingError creates a new MaskingError
func NewMaskingError(errorType MaskingErrorType, message, component string, cause error) *MaskingError {
	return &MaskingError{
		Type:        errorType,
		Message:     message,
		Component:   component,
		Recoverable: isRecoverable(errorType),
		Timestamp:   time.Now(),
		Cause:       cause,
	}
}

// isRecoverable determines if an error type is recoverable
func isRecoverable(errorType MaskingErrorType) bool {
	switch errorType {
	case ErrorInvalidPattern:
		return true // Rule is disabled, masking continues
	case ErrorLengthInvariant:
		return true // Original content is returned unmasked
	case ErrorUnknownType:
		return true // Generic masking applies
	case ErrorConfiguration:
		return true // Defaults apply
	default:
		return false
	}
}
