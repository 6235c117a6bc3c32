// Package reconcile drives instance records toward a terminal state by
// polling the orchestration backend on single-shot timers.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
	"github.com/devghori1264/aerophoenix/osplugin/internal/metrics"
	"github.com/devghori1264/aerophoenix/osplugin/internal/models"
	"github.com/devghori1264/aerophoenix/osplugin/internal/storage"
)

// DefaultInterval is the poll interval when none is configured.
const DefaultInterval = 5 * time.Second

// publishTimeout bounds the delivery of one lifecycle event.
const publishTimeout = 5 * time.Second

// errSuperseded aborts a store transaction whose record moved to a newer generation.
var errSuperseded = errors.New("reconciliation superseded")

// Event names published on terminal transitions.
const (
	EventInstantiated = "instance.instantiated"
	EventFailed       = "instance.failed"
	EventDeleted      = "instance.deleted"
)

// Event is the payload published when an instance reaches a terminal state.
type Event struct {
	Event      string    `json:"event"`
	InstanceID string    `json:"instanceId"`
	HostIP     string    `json:"hostIp"`
	Status     string    `json:"status"`
	Info       string    `json:"info,omitempty"`
	Time       time.Time `json:"time"`
}

// Publisher delivers lifecycle events. natsclient.Publisher implements it.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

// Options configures a Reconciler. Zero values select defaults.
type Options struct {
	Interval  time.Duration
	Clock     clock.WithDelayedExecution
	Publisher Publisher
	Subject   string
	Logger    *zap.Logger
}

type entry struct {
	gen   uint64
	timer clock.Timer // nil while the tick is running
}

// Reconciler keeps at most one pending poll per instance. Each poll carries
// the record generation it was scheduled for; a newer generation replaces
// the pending timer and makes older polls exit without writing.
type Reconciler struct {
	store    storage.Store
	backends heat.ClientFactory
	clock    clock.WithDelayedExecution
	interval time.Duration
	pub      Publisher
	subject  string
	log      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	entries map[string]*entry
	stopped bool
}

func New(store storage.Store, backends heat.ClientFactory, opts Options) *Reconciler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Reconciler{
		store:    store,
		backends: backends,
		clock:    opts.Clock,
		interval: opts.Interval,
		pub:      opts.Publisher,
		subject:  opts.Subject,
		log:      opts.Logger.Named("reconcile"),
		ctx:      ctx,
		cancel:   cancel,
		entries:  make(map[string]*entry),
	}
}

// Schedule arms a poll for the instance one interval from now. A pending
// poll of an older generation is cancelled; a request for a generation
// older than the tracked one is ignored.
func (r *Reconciler) Schedule(instanceID string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if e, ok := r.entries[instanceID]; ok {
		if gen < e.gen {
			return
		}
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	e := &entry{gen: gen}
	// some clocks run AfterFunc callbacks while holding their own lock; taking
	// r.mu there would invert the lock order used here
	e.timer = r.clock.AfterFunc(r.interval, func() { go r.fire(instanceID, e) })
	r.entries[instanceID] = e
	metrics.SetReconcileActive(len(r.entries))
}

// Active returns the number of instances with a pending or running poll.
func (r *Reconciler) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Resume schedules every record that was still converging when the process
// last stopped and returns how many were picked up.
func (r *Reconciler) Resume(ctx context.Context) (int, error) {
	list, err := r.store.ListInstances(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range list {
		if !m.OperationalStatus.Pending() {
			continue
		}
		r.Schedule(m.InstanceID, m.Generation)
		n++
	}
	r.log.Info("resumed pending instances", zap.Int("count", n))
	return n, nil
}

// Stop cancels every pending poll and waits for running ones to return.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	r.stopped = true
	for id, e := range r.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(r.entries, id)
	}
	metrics.SetReconcileActive(0)
	r.mu.Unlock()
	r.cancel()
	r.wg.Wait()
}

func (r *Reconciler) fire(id string, e *entry) {
	r.mu.Lock()
	if r.stopped || r.entries[id] != e {
		r.mu.Unlock()
		return
	}
	e.timer = nil
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		outcome := r.tick(id, e.gen)
		metrics.RecordReconcileTick(outcome)
		if outcome != outcomeRetry {
			r.release(id, e)
		}
	}()
}

// release forgets the entry unless a newer schedule already replaced it.
func (r *Reconciler) release(id string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[id] == e {
		delete(r.entries, id)
		metrics.SetReconcileActive(len(r.entries))
	}
}

const (
	outcomeRetry        = "retry"
	outcomeInstantiated = "instantiated"
	outcomeFailed       = "failed"
	outcomeDeleted      = "deleted"
	outcomeVanished     = "vanished"
	outcomeSuperseded   = "superseded"
	outcomeCancelled    = "cancelled"
)

// tick performs one poll and returns its outcome. On outcomeRetry the next
// poll has already been scheduled.
func (r *Reconciler) tick(id string, gen uint64) string {
	ctx := r.ctx
	log := r.log.With(zap.String("instance", id), zap.Uint64("generation", gen))

	m, err := r.store.GetInstance(ctx, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Debug("record gone")
		return outcomeVanished
	case ctx.Err() != nil:
		return outcomeCancelled
	case err != nil:
		log.Warn("read record", zap.Error(err))
		return r.retry(id, gen)
	}
	if m.Generation != gen {
		return outcomeSuperseded
	}
	if !m.OperationalStatus.Pending() {
		return outcomeSuperseded
	}

	client, err := r.backends.ForHost(ctx, m.HostID)
	if err != nil {
		if ctx.Err() != nil {
			return outcomeCancelled
		}
		log.Warn("backend client", zap.Error(err))
		return r.retry(id, gen)
	}
	stack, err := client.GetStack(ctx, m.StackRef())
	if errors.Is(err, heat.ErrStackNotFound) {
		stack, err = nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return outcomeCancelled
		}
		log.Warn("read stack", zap.String("stack", m.StackRef()), zap.Error(err))
		return r.retry(id, gen)
	}

	var outcome string
	if m.OperationalStatus == models.StatusTerminating {
		outcome, err = r.terminating(ctx, m, stack)
	} else {
		outcome, err = r.instantiating(ctx, m, stack)
	}
	if err != nil {
		switch {
		case errors.Is(err, errSuperseded):
			return outcomeSuperseded
		case errors.Is(err, storage.ErrNotFound):
			return outcomeVanished
		case ctx.Err() != nil:
			return outcomeCancelled
		}
		log.Warn("write record", zap.Error(err))
		return r.retry(id, gen)
	}
	if outcome == outcomeRetry {
		return r.retry(id, gen)
	}
	log.Info("instance converged", zap.String("outcome", outcome))
	return outcome
}

func (r *Reconciler) retry(id string, gen uint64) string {
	r.Schedule(id, gen)
	return outcomeRetry
}

// instantiating handles a record waiting for its stack to be created. stack
// is nil when the backend has no such stack.
func (r *Reconciler) instantiating(ctx context.Context, m *models.Instance, stack *heat.Stack) (string, error) {
	if stack == nil {
		return r.fail(ctx, m, "stack not found")
	}
	if stack.Status == heat.StatusInProgress {
		if m.RemoteHandle == "" && stack.ID != "" {
			// the create landed but its handle was never committed
			_, err := r.store.UpdateInstance(ctx, m.InstanceID, func(cur *models.Instance) error {
				if cur.Generation != m.Generation {
					return errSuperseded
				}
				cur.RemoteHandle = stack.ID
				return nil
			})
			if err != nil {
				return "", err
			}
		}
		return outcomeRetry, nil
	}
	if stack.Action == heat.ActionCreate && stack.Status == heat.StatusComplete {
		updated, err := r.store.UpdateInstance(ctx, m.InstanceID, func(cur *models.Instance) error {
			if cur.Generation != m.Generation {
				return errSuperseded
			}
			cur.OperationalStatus = models.StatusInstantiated
			cur.OperationInfo = stack.Reason
			if cur.RemoteHandle == "" {
				cur.RemoteHandle = stack.ID
			}
			return nil
		})
		if err != nil {
			return "", err
		}
		r.publish(ctx, EventInstantiated, updated)
		return outcomeInstantiated, nil
	}
	return r.fail(ctx, m, stack.Reason)
}

// terminating handles a record whose stack delete was accepted.
func (r *Reconciler) terminating(ctx context.Context, m *models.Instance, stack *heat.Stack) (string, error) {
	deleted := stack == nil ||
		(stack.Action == heat.ActionDelete && stack.Status == heat.StatusComplete)
	if deleted {
		err := r.store.DeleteInstance(ctx, m.InstanceID, func(cur *models.Instance) error {
			if cur.Generation != m.Generation {
				return errSuperseded
			}
			return nil
		})
		if err != nil {
			return "", err
		}
		r.publish(ctx, EventDeleted, m)
		return outcomeDeleted, nil
	}
	if stack.Status == heat.StatusInProgress {
		return outcomeRetry, nil
	}
	return r.fail(ctx, m, stack.Reason)
}

func (r *Reconciler) fail(ctx context.Context, m *models.Instance, reason string) (string, error) {
	updated, err := r.store.UpdateInstance(ctx, m.InstanceID, func(cur *models.Instance) error {
		if cur.Generation != m.Generation {
			return errSuperseded
		}
		cur.OperationalStatus = models.StatusFailure
		cur.OperationInfo = reason
		return nil
	})
	if err != nil {
		return "", err
	}
	r.publish(ctx, EventFailed, updated)
	return outcomeFailed, nil
}

func (r *Reconciler) publish(ctx context.Context, name string, m *models.Instance) {
	if r.pub == nil || r.subject == "" {
		return
	}
	status := string(m.OperationalStatus)
	if name == EventDeleted {
		status = "DELETED"
	}
	payload, err := json.Marshal(Event{
		Event:      name,
		InstanceID: m.InstanceID,
		HostIP:     m.HostID,
		Status:     status,
		Info:       m.OperationInfo,
		Time:       r.clock.Now().UTC(),
	})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := r.pub.Publish(ctx, r.subject, payload); err != nil {
		r.log.Warn("publish event", zap.String("event", name), zap.Error(err))
	}
}
