// Package core holds the identity and value model, the repository contracts
// and the search parameter/result types shared by every store.
package core

import (
	"context"
	"fmt"
)

// EventType represents the type of change in a repository.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in a repository.
type Event struct {
	Type      EventType
	ID        string
	Reason    string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s (%s)", e.Type, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type contextKey string

// ChangeReasonKey is the context key for attaching a change reason to the events a write emits.
const ChangeReasonKey contextKey = "change_reason"

// WithChangeReason returns a context carrying reason.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, ChangeReasonKey, reason)
}

// ChangeReason extracts the change reason from ctx, if any.
func ChangeReason(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	reason, _ := ctx.Value(ChangeReasonKey).(string)
	return reason
}
