package models

import "time"

// OperationalStatus is the persisted lifecycle state of an application instance.
type OperationalStatus string

const (
	StatusInstantiating OperationalStatus = "INSTANTIATING"
	StatusInstantiated  OperationalStatus = "INSTANTIATED"
	StatusTerminating   OperationalStatus = "TERMINATING"
	StatusFailure       OperationalStatus = "FAILURE"
)

// Pending reports whether the status still needs reconciliation.
func (s OperationalStatus) Pending() bool {
	return s == StatusInstantiating || s == StatusTerminating
}

// Instance is the record kept for every application instance backed by a remote stack.
// Shared between the controller, the reconciler and the storage layer.
type Instance struct {
	InstanceID        string            `json:"instance_id"`
	HostID            string            `json:"host_id"`
	StackName         string            `json:"stack_name"`
	RemoteHandle      string            `json:"remote_handle,omitempty"`
	OperationalStatus OperationalStatus `json:"operational_status"`
	OperationInfo     string            `json:"operation_info,omitempty"`
	// Generation is bumped every time reconciliation is (re)started; ticks
	// scheduled for an older generation are discarded.
	Generation uint64    `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StackRef returns the identifier to look the remote stack up by. The
// handle is preferred; the name is used while the create call is unconfirmed.
func (i *Instance) StackRef() string {
	if i.RemoteHandle != "" {
		return i.RemoteHandle
	}
	return i.StackName
}
