package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrNodeNotFound   = errors.New("node not found")
	ErrSelfLoop       = errors.New("self-loop not allowed")
	ErrEmptyTargets   = errors.New("target set is empty")
)

// Error provides structured error information for graph, partition and
// target operations.
type Error struct {
	Op     string // Operation that failed (e.g., "LoadEdgeList", "Label")
	Entity string // Entity type (e.g., "node", "edge", "line")
	Key    string // Node identifier or raw token (if applicable)
	Line   int    // 1-based input line (for parse failures)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Line > 0 && e.Key != "":
		return fmt.Sprintf("%s %s %q (line %d): %v", e.Op, e.Entity, e.Key, e.Line, e.Cause)
	case e.Line > 0:
		return fmt.Sprintf("%s %s (line %d): %v", e.Op, e.Entity, e.Line, e.Cause)
	case e.Key != "":
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Key, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building Errors.
type ErrorBuilder struct {
	err Error
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Op: op}}
}

// Node sets the entity to "node" with the given identifier.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.Key = id
	return b
}

// Edge sets the entity to "edge" between u and v.
func (b *ErrorBuilder) Edge(u, v string) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.Key = u + " " + v
	return b
}

// Line sets the entity to "line" with the given 1-based line number.
func (b *ErrorBuilder) Line(n int) *ErrorBuilder {
	if b.err.Entity == "" {
		b.err.Entity = "line"
	}
	b.err.Line = n
	return b
}

// Token records the offending raw token.
func (b *ErrorBuilder) Token(tok string) *ErrorBuilder {
	b.err.Key = tok
	return b
}

// Entity sets an arbitrary entity type.
func (b *ErrorBuilder) Entity(entity string) *ErrorBuilder {
	b.err.Entity = entity
	return b
}

// Cause sets the underlying error.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error.
func (b *ErrorBuilder) Build() *Error {
	if b.err.Entity == "" {
		b.err.Entity = "graph"
	}
	return &b.err
}

// IsNotFound reports whether err is a lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// IsMalformed reports whether err is a parse failure.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// NotFound builds the lookup failure for a missing node.
func NotFound(op, node string) error {
	return NewError(op).Node(node).Cause(ErrNodeNotFound).Build()
}
