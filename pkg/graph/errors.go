package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrDuplicateNode   = errors.New("duplicate node name")
	ErrEmptyNodeName   = errors.New("empty node name")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "AddNode", "LoadSnapshot")
	Entity  string // Entity type (e.g., "node", "edge", "snapshot")
	Name    string // Node name (if applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Name, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Node sets the entity to "node" with the given name.
func (b *ErrorBuilder) Node(name string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Name = name
	return b
}

// Edge sets the entity to "edge".
func (b *ErrorBuilder) Edge() *ErrorBuilder {
	b.err.Entity = "edge"
	return b
}

// Snapshot sets the entity to "snapshot".
func (b *ErrorBuilder) Snapshot() *ErrorBuilder {
	b.err.Entity = "snapshot"
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
