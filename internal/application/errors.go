package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid ID")
	ErrDuplicateID  = errors.New("duplicate ID")
	ErrDanglingEdge = errors.New("dangling connection")
	ErrUnknownMode  = errors.New("unknown view mode")
	ErrEmptyMinimap = errors.New("minimap has no visible nodes")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConnectionError represents a connection that cannot be stored
type ConnectionError struct {
	From   string
	To     string
	Reason string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect %s to %s: %s", e.From, e.To, e.Reason)
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrDanglingEdge
}

// NotFoundError names the missing entity
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
