// Package errors provides custom error types for the reconciliation
// engine. These errors enable programmatic error checking and keep the
// distinction between operator mistakes (invalid actions), defective
// external data (malformed snapshots), and plain I/O failures.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the reconciliation engine
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAction indicates an action not permitted for an item's status
	ErrInvalidAction = errors.New("invalid action for status")

	// ErrMalformedSnapshot indicates a structurally defective snapshot
	ErrMalformedSnapshot = errors.New("malformed snapshot")
)

// InvalidActionError reports an operator or caller action that is not
// permitted for the item's diff status, e.g. merge on a new item.
type InvalidActionError struct {
	ItemID string
	Status string
	Action string
}

// Error implements the error interface
func (e *InvalidActionError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("invalid action %q for status %q on item %s", e.Action, e.Status, e.ItemID)
	}
	return fmt.Sprintf("invalid action %q for status %q", e.Action, e.Status)
}

// Is implements errors.Is support
func (e *InvalidActionError) Is(target error) bool {
	return target == ErrInvalidAction
}

// NewInvalidActionError creates a new InvalidActionError
func NewInvalidActionError(itemID, status, action string) *InvalidActionError {
	return &InvalidActionError{ItemID: itemID, Status: status, Action: action}
}

// MalformedSnapshotError reports a structural defect in one entity
// family of a snapshot. Detection for that family is skipped; the
// other families still reconcile.
type MalformedSnapshotError struct {
	Family  string
	Subject string
	Message string
}

// Error implements the error interface
func (e *MalformedSnapshotError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("malformed %s data (%s): %s", e.Family, e.Subject, e.Message)
	}
	return fmt.Sprintf("malformed %s data: %s", e.Family, e.Message)
}

// Is implements errors.Is support
func (e *MalformedSnapshotError) Is(target error) bool {
	return target == ErrMalformedSnapshot
}

// NewMalformedSnapshotError creates a new MalformedSnapshotError
func NewMalformedSnapshotError(family, subject, message string) *MalformedSnapshotError {
	return &MalformedSnapshotError{Family: family, Subject: subject, Message: message}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParseError represents an error when parsing snapshot data
type ParseError struct {
	Format  string // "json" or "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during file operations
type IOError struct {
	Operation string // "read", "write", "create"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidAction checks if an error is an invalid action error
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// IsMalformedSnapshot checks if an error is a malformed snapshot error
func IsMalformedSnapshot(err error) bool {
	return errors.Is(err, ErrMalformedSnapshot)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}
