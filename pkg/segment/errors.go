package segment

import (
	"errors"
	"fmt"
)

// Segmentation failure taxonomy. Every error returned by this package wraps
// one of these sentinels; an error always means no segments were produced.
var (
	// ErrInvalidConfiguration indicates bad options or a missing input.
	ErrInvalidConfiguration = errors.New("invalid segmentation configuration")
	// ErrInconsistentConstraint indicates a node that is both excluded and
	// mandatory at the same time.
	ErrInconsistentConstraint = errors.New("inconsistent node constraint")
	// ErrUnresolvableCycle indicates that the chosen segments cannot be
	// contracted without creating a cyclic dependency.
	ErrUnresolvableCycle = errors.New("unresolvable cycle between segments")
)

// SegmentError provides structured error information for segmentation
// failures.
type SegmentError struct {
	Op      string // Stage that failed (e.g., "Validate", "SplitByDevice")
	Node    string // Node name (if applicable)
	Context string // Additional context
	Cause   error  // Underlying sentinel
}

// Error implements the error interface.
func (e *SegmentError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s node %q: %v", e.Op, e.Node, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SegmentError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *SegmentError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func invalidConfig(context string) error {
	return &SegmentError{Op: "Validate", Context: context, Cause: ErrInvalidConfiguration}
}

func inconsistentConstraint(node string) error {
	return &SegmentError{Op: "Validate", Node: node, Cause: ErrInconsistentConstraint}
}

func unresolvableCycle(context string) error {
	return &SegmentError{Op: "ValidateCycles", Context: context, Cause: ErrUnresolvableCycle}
}
