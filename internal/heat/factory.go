package heat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/subosito/gotenv"

	"github.com/devghori1264/aerophoenix/osplugin/internal/metrics"
)

// CredentialSource returns the raw rc file uploaded for a host.
type CredentialSource interface {
	Get(hostID string) ([]byte, error)
}

// ConnectFunc builds a client from parsed rc variables.
type ConnectFunc func(env map[string]string, timeout time.Duration) (Client, error)

// HostClientFactory builds one client per host from its uploaded rc file and
// caches it until the credentials change.
type HostClientFactory struct {
	creds   CredentialSource
	timeout time.Duration
	connect ConnectFunc
	cache   *ristretto.Cache[string, Client]

	// versions counts invalidations per host. A client built from
	// credentials read before an Invalidate is never cached.
	mu       sync.Mutex
	versions map[string]uint64
}

// NewHostClientFactory creates a factory. A nil connect uses Connect.
func NewHostClientFactory(creds CredentialSource, timeout time.Duration, cacheSize int64, connect ConnectFunc) (*HostClientFactory, error) {
	if connect == nil {
		connect = Connect
	}
	if cacheSize <= 0 {
		cacheSize = 64
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, Client]{
		NumCounters:        cacheSize * 10,
		MaxCost:            cacheSize, // one unit per host
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("client cache: %w", err)
	}
	return &HostClientFactory{
		creds:    creds,
		timeout:  timeout,
		connect:  connect,
		cache:    cache,
		versions: make(map[string]uint64),
	}, nil
}

func (f *HostClientFactory) ForHost(ctx context.Context, hostID string) (Client, error) {
	if c, ok := f.cache.Get(hostID); ok {
		return c, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	version := f.version(hostID)
	blob, err := f.creds.Get(hostID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w %s", ErrNoCredentials, hostID)
		}
		return nil, fmt.Errorf("read credentials for %s: %w", hostID, err)
	}
	env, err := gotenv.StrictParse(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("parse credentials for %s: %w", hostID, err)
	}
	c, err := f.connect(env, f.timeout)
	if err != nil {
		return nil, err
	}
	c = &instrumented{next: c, timeout: f.timeout}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.versions[hostID] == version {
		f.cache.Set(hostID, c, 1)
		f.cache.Wait()
	}
	return c, nil
}

func (f *HostClientFactory) version(hostID string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.versions[hostID]
}

// Invalidate drops the cached client of hostID. Lookups already in flight
// still return their client but do not cache it.
func (f *HostClientFactory) Invalidate(hostID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versions[hostID]++
	f.cache.Del(hostID)
}

// Close releases the cache.
func (f *HostClientFactory) Close() {
	f.cache.Close()
}

// instrumented bounds every call with a deadline and records it in metrics.
type instrumented struct {
	next    Client
	timeout time.Duration
}

func (c *instrumented) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *instrumented) CreateStack(ctx context.Context, spec StackSpec) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	start := time.Now()
	id, err := c.next.CreateStack(ctx, spec)
	metrics.RecordBackendCall("create", err, time.Since(start))
	return id, err
}

func (c *instrumented) DeleteStack(ctx context.Context, name, id string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	start := time.Now()
	err := c.next.DeleteStack(ctx, name, id)
	metrics.RecordBackendCall("delete", ignoreNotFound(err), time.Since(start))
	return err
}

func (c *instrumented) GetStack(ctx context.Context, ref string) (*Stack, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	start := time.Now()
	st, err := c.next.GetStack(ctx, ref)
	metrics.RecordBackendCall("get", ignoreNotFound(err), time.Since(start))
	return st, err
}

func (c *instrumented) ListOutputs(ctx context.Context, ref string) ([]Output, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	start := time.Now()
	out, err := c.next.ListOutputs(ctx, ref)
	metrics.RecordBackendCall("outputs", err, time.Since(start))
	return out, err
}

func (c *instrumented) ListEvents(ctx context.Context, name, id string) ([]Event, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	start := time.Now()
	events, err := c.next.ListEvents(ctx, name, id)
	metrics.RecordBackendCall("events", err, time.Since(start))
	return events, err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrStackNotFound) {
		return nil
	}
	return err
}
