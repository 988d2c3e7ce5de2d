package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors.
var (
	ErrNotFound   = errors.New("entity not found")
	ErrInvalidID  = errors.New("ID must be a valid UUID")
	ErrFrozen     = errors.New("value is immutable")
	ErrValidation = errors.New("entity validation failed")
)

// NotFoundError is returned when no entity matches the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Entity not found using ID: %s", e.ID)
}

// Is allows errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidIdentifierError is returned when identity text is not a v4 UUID.
type InvalidIdentifierError struct {
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidID.Error(), e.Value)
}

// Is allows errors.Is(err, ErrInvalidID).
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidID
}

// FieldErrors maps a field name to the messages of every rule it failed.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Fields returns the failing field names in lexical order.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidationError carries the field errors produced while validating an entity.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, name := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return fmt.Sprintf("%s (%s)", ErrValidation.Error(), strings.Join(parts, ", "))
}

// Is allows errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
