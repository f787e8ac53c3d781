// Package syncer bridges store mutations to durable storage.
//
// The [Controller] is the only component holding both the reactive
// store and the persistence adapter. At startup it hydrates the store
// from whatever was last saved; afterwards every mutation schedules a
// background write of the post-mutation snapshot. Writes coalesce to
// the latest state and never block the mutating caller.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/keith-kurak/i-didnt-park/internal/persist"
	"github.com/keith-kurak/i-didnt-park/internal/store"
)

// State is the controller lifecycle. Hydration is one-shot and
// terminal: there is no transition back out of StateReady.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateReady:
		return "ready"
	}

	return "unknown"
}

// Config tunes the background writer.
type Config struct {
	// MaxRetries bounds save attempts per snapshot before it is dropped
	// in favor of a later one
	MaxRetries int

	// RetryBackoff is the wait between failed save attempts
	RetryBackoff time.Duration
}

// DefaultConfig returns sensible defaults for the writer.
func DefaultConfig() Config {
	return Config{
		MaxRetries:   5,
		RetryBackoff: 2 * time.Second,
	}
}

// Controller keeps durable storage converged with the in-memory store.
type Controller struct {
	st      *store.Store
	adapter persist.Adapter
	config  Config
	logger  *slog.Logger

	mu          sync.Mutex
	state       State
	pending     *store.Snapshot // latest unsaved snapshot, overwritten by newer
	running     bool
	unsubscribe func()

	wake      chan struct{}
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// New creates a controller over the given store and adapter.
func New(st *store.Store, adapter persist.Adapter, config Config) *Controller {
	return &Controller{
		st:      st,
		adapter: adapter,
		config:  config,
		logger:  slog.Default(),
		wake:    make(chan struct{}, 1),
	}
}

// WithLogger sets the logger for the controller.
func (c *Controller) WithLogger(logger *slog.Logger) *Controller {
	c.logger = logger
	return c
}

// State reports the controller lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Start hydrates the store from durable storage, subscribes to store
// mutations, and launches the background writer. A load failure is not
// fatal: the store keeps its defaults and the session runs in-memory
// until the next successful save.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()

	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("sync controller already running")
	}

	c.running = true
	c.state = StateHydrating
	c.stopCh = make(chan struct{})
	c.stoppedCh = make(chan struct{})
	c.mu.Unlock()

	commutes, settings, err := c.adapter.LoadAll()
	if err != nil {
		c.logger.Warn("hydration failed, starting with defaults", "error", err)
	} else {
		c.st.Replace(commutes, settings)
	}

	c.mu.Lock()
	c.state = StateReady
	c.mu.Unlock()

	// Mutations enqueue their snapshot; the writer persists the latest.
	c.unsubscribe = c.st.Subscribe(func(snap store.Snapshot) {
		c.mu.Lock()
		c.pending = &snap
		c.mu.Unlock()

		select {
		case c.wake <- struct{}{}:
		default:
		}
	})

	c.logger.Debug("sync controller ready",
		"commutes", len(commutes),
		"max_retries", c.config.MaxRetries)

	go c.run(ctx)

	return nil
}

// Stop detaches from the store, flushes any pending snapshot, and joins
// the writer. Safe to call once after a successful Start.
func (c *Controller) Stop() {
	c.mu.Lock()

	if !c.running {
		c.mu.Unlock()
		return
	}

	c.running = false
	c.unsubscribe()
	close(c.stopCh)
	c.mu.Unlock()

	<-c.stoppedCh
}

// run is the writer loop. A single goroutine consumes pending
// snapshots, so persisted writes land in mutation order; coalescing
// only ever skips forward to a newer snapshot, never back.
func (c *Controller) run(ctx context.Context) {
	defer close(c.stoppedCh)

	for {
		select {
		case <-ctx.Done():
			c.flush()
			return
		case <-c.stopCh:
			c.flush()
			return
		case <-c.wake:
			c.persistPending(ctx)
		}
	}
}

// persistPending writes the latest snapshot, retrying with backoff. A
// snapshot that keeps failing is dropped after MaxRetries so it never
// blocks later writes; the adapter guarantees the previously persisted
// state is still intact.
func (c *Controller) persistPending(ctx context.Context) {
	attempts := 0

	for {
		snap := c.takePending()
		if snap == nil {
			return
		}

		err := c.adapter.SaveAll(snap.Commutes, snap.Settings)
		if err == nil {
			attempts = 0
			continue // another snapshot may have arrived meanwhile
		}

		attempts++

		c.logger.Error("persist failed, in-memory state remains authoritative",
			"attempt", attempts,
			"error", err)

		if attempts >= c.config.MaxRetries {
			c.logger.Error("dropping snapshot after repeated persist failures",
				"attempts", attempts)

			attempts = 0

			continue
		}

		// Put the snapshot back unless a newer one arrived while saving.
		c.restorePending(snap)

		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-time.After(c.config.RetryBackoff):
		}
	}
}

// flush makes one best-effort attempt to save whatever is pending at
// shutdown.
func (c *Controller) flush() {
	snap := c.takePending()
	if snap == nil {
		return
	}

	if err := c.adapter.SaveAll(snap.Commutes, snap.Settings); err != nil {
		c.logger.Error("final persist failed", "error", err)
	}
}

func (c *Controller) takePending() *store.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.pending
	c.pending = nil

	return snap
}

// restorePending re-queues a failed snapshot for retry. If a newer one
// arrived in the meantime it wins: writes coalesce forward only.
func (c *Controller) restorePending(snap *store.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		c.pending = snap
	}
}
