// Package heat talks to the stack-orchestration backend. The rest of the
// service only sees the Client interface; the gophercloud implementation and
// the per-host factory live next to it.
package heat

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrStackNotFound is returned when the backend has no stack for a reference.
	ErrStackNotFound = errors.New("stack not found")
	// ErrNoCredentials is returned when no rc file was uploaded for a host.
	ErrNoCredentials = errors.New("no backend credentials for host")
)

// Stack status values reported by the backend, the part after the action
// in e.g. CREATE_IN_PROGRESS.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusComplete   = "COMPLETE"
	StatusFailed     = "FAILED"

	ActionCreate = "CREATE"
	ActionDelete = "DELETE"
)

// Stack is the backend's view of a deployed stack.
type Stack struct {
	ID      string
	Name    string
	Action  string
	Status  string
	Reason  string
	Outputs []Output
}

// StackStatus returns the combined backend status, e.g. CREATE_COMPLETE.
func (s *Stack) StackStatus() string {
	return s.Action + "_" + s.Status
}

// Output is one entry of a stack's outputs section.
type Output struct {
	Key   string
	Value any
}

// Event is one resource event from the stack's event history.
type Event struct {
	ResourceName         string
	LogicalResourceID    string
	PhysicalResourceID   string
	ResourceStatus       string
	ResourceStatusReason string
	Time                 time.Time
}

// StackSpec describes a stack to create.
type StackSpec struct {
	Name     string
	Template []byte
	// TimeoutMinutes is passed to the backend as the stack creation timeout; 0 keeps its default.
	TimeoutMinutes int
}

// Client is a backend handle scoped to one host.
type Client interface {
	CreateStack(ctx context.Context, spec StackSpec) (string, error)
	// DeleteStack returns ErrStackNotFound when the stack is already gone.
	DeleteStack(ctx context.Context, name, id string) error
	// GetStack accepts a stack id or name.
	GetStack(ctx context.Context, ref string) (*Stack, error)
	ListOutputs(ctx context.Context, ref string) ([]Output, error)
	ListEvents(ctx context.Context, name, id string) ([]Event, error)
}

// ClientFactory hands out clients for hosts.
type ClientFactory interface {
	ForHost(ctx context.Context, hostID string) (Client, error)
	// Invalidate drops any cached client for the host, e.g. after its credentials changed.
	Invalidate(hostID string)
}

// splitStackStatus splits CREATE_IN_PROGRESS into CREATE and IN_PROGRESS.
func splitStackStatus(s string) (action, status string) {
	action, status, ok := strings.Cut(s, "_")
	if !ok {
		return "", s
	}
	return action, status
}
