// Package heattest provides an in-memory orchestration backend for tests.
package heattest

import (
	"context"
	"fmt"
	"sync"

	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
)

// Result is one scripted GetStack answer.
type Result struct {
	Stack *heat.Stack
	Err   error
}

// Backend is a fake heat.Client. Stacks created through it start in
// CREATE_IN_PROGRESS and only move when the test says so.
type Backend struct {
	mu      sync.Mutex
	nextID  int
	stacks  map[string]*heat.Stack
	outputs map[string][]heat.Output
	events  map[string][]heat.Event
	script  map[string][]Result
	calls   map[string]int

	// Errors returned by the matching calls when set.
	CreateErr  error
	DeleteErr  error
	OutputsErr error
	EventsErr  error
}

func NewBackend() *Backend {
	return &Backend{
		stacks:  make(map[string]*heat.Stack),
		outputs: make(map[string][]heat.Output),
		events:  make(map[string][]heat.Event),
		script:  make(map[string][]Result),
		calls:   make(map[string]int),
	}
}

// AddStack registers a stack directly.
func (b *Backend) AddStack(st heat.Stack) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := st
	b.stacks[st.ID] = &cp
}

// SetStatus moves the stack identified by id or name.
func (b *Backend) SetStatus(ref, action, status, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st := b.lookup(ref); st != nil {
		st.Action, st.Status, st.Reason = action, status, reason
	}
}

// Drop removes a stack as if the backend purged it.
func (b *Backend) Drop(ref string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st := b.lookup(ref); st != nil {
		delete(b.stacks, st.ID)
	}
}

// Script queues answers for GetStack(ref). They are consumed before the
// stored stacks are consulted.
func (b *Backend) Script(ref string, results ...Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.script[ref] = append(b.script[ref], results...)
}

func (b *Backend) SetOutputs(ref string, outs ...heat.Output) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputs[ref] = outs
}

func (b *Backend) SetEvents(ref string, events ...heat.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[ref] = events
}

// Calls returns how often op (create, delete, get, outputs, events) was called.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// Stacks returns the number of stacks the backend holds.
func (b *Backend) Stacks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.stacks)
}

func (b *Backend) lookup(ref string) *heat.Stack {
	if st, ok := b.stacks[ref]; ok {
		return st
	}
	for _, st := range b.stacks {
		if st.Name == ref {
			return st
		}
	}
	return nil
}

func (b *Backend) CreateStack(_ context.Context, spec heat.StackSpec) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["create"]++
	if b.CreateErr != nil {
		return "", b.CreateErr
	}
	b.nextID++
	id := fmt.Sprintf("stack-%d", b.nextID)
	b.stacks[id] = &heat.Stack{
		ID:     id,
		Name:   spec.Name,
		Action: heat.ActionCreate,
		Status: heat.StatusInProgress,
	}
	return id, nil
}

func (b *Backend) DeleteStack(_ context.Context, name, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["delete"]++
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	st := b.lookup(id)
	if st == nil {
		st = b.lookup(name)
	}
	if st == nil {
		return heat.ErrStackNotFound
	}
	st.Action, st.Status, st.Reason = heat.ActionDelete, heat.StatusInProgress, ""
	return nil
}

func (b *Backend) GetStack(_ context.Context, ref string) (*heat.Stack, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["get"]++
	if q := b.script[ref]; len(q) > 0 {
		b.script[ref] = q[1:]
		return q[0].Stack, q[0].Err
	}
	st := b.lookup(ref)
	if st == nil {
		return nil, heat.ErrStackNotFound
	}
	cp := *st
	return &cp, nil
}

func (b *Backend) ListOutputs(_ context.Context, ref string) ([]heat.Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["outputs"]++
	if b.OutputsErr != nil {
		return nil, b.OutputsErr
	}
	st := b.lookup(ref)
	if st == nil {
		return nil, heat.ErrStackNotFound
	}
	if outs, ok := b.outputs[ref]; ok {
		return outs, nil
	}
	return b.outputs[st.ID], nil
}

func (b *Backend) ListEvents(_ context.Context, name, id string) ([]heat.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["events"]++
	if b.EventsErr != nil {
		return nil, b.EventsErr
	}
	st := b.lookup(id)
	if st == nil {
		return nil, heat.ErrStackNotFound
	}
	return b.events[st.ID], nil
}

// Factory hands out the same Backend for every host.
type Factory struct {
	Backend *Backend
	// Err, when set, is returned by ForHost.
	Err error

	mu          sync.Mutex
	invalidated []string
}

func NewFactory(b *Backend) *Factory {
	return &Factory{Backend: b}
}

func (f *Factory) ForHost(_ context.Context, _ string) (heat.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Backend, nil
}

func (f *Factory) Invalidate(hostID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, hostID)
}

// Invalidated returns the hosts passed to Invalidate, in call order.
func (f *Factory) Invalidated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.invalidated...)
}
