// Package correlator matches asynchronous JSON-RPC responses to the
// requests that are waiting on them.
package correlator

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mcpcore/mcp-go/mcperr"
)

// Outcome is the one-shot completion value delivered to a waiting caller.
type Outcome struct {
	Result json.RawMessage
	Err    error
}

// NewSlot returns a completion channel sized so Deliver/Close never block
// on a caller that has already stopped receiving (e.g. one that timed out
// the instant before delivery).
func NewSlot() chan Outcome {
	return make(chan Outcome, 1)
}

// Correlator owns the id -> pending-slot table. Zero value is not usable;
// use New.
type Correlator struct {
	mu      sync.Mutex
	pending map[string]chan Outcome
	closed  bool
	log     *slog.Logger
}

// New creates an empty Correlator. A nil logger falls back to slog.Default().
func New(log *slog.Logger) *Correlator {
	if log == nil {
		log = slog.Default()
	}
	return &Correlator{pending: make(map[string]chan Outcome), log: log}
}

// Register inserts the pairing for id. It must be called before the
// matching request is written to the wire, so that a response racing the
// write still finds a waiting slot. Registering a duplicate id, or
// registering after Close, is a programming error and is reported as
// KindProtocol / KindChannelClosed respectively.
func (c *Correlator) Register(id string, slot chan Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return mcperr.ChannelClosed("correlator closed, cannot register %s", id)
	}
	if _, exists := c.pending[id]; exists {
		return mcperr.Protocol("duplicate correlation id %s", id)
	}
	c.pending[id] = slot
	return nil
}

// Deliver routes a response to its waiting caller. A response for an
// unknown id (already delivered, cancelled, or never registered) is
// logged and dropped — this is the expected shape for a late response
// arriving after its request timed out.
func (c *Correlator) Deliver(id string, outcome Outcome) {
	c.mu.Lock()
	slot, exists := c.pending[id]
	if exists {
		delete(c.pending, id)
	}
	c.mu.Unlock()

	if !exists {
		c.log.Info("dropping response for unknown or expired correlation id", "id", id)
		return
	}

	slot <- outcome
}

// Cancel removes id without signaling its slot; used on timeout, where the
// caller has already given up and moved on.
func (c *Correlator) Cancel(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Close drains every still-pending entry, delivering err to each, and
// marks the correlator so further Register calls fail fast. Safe to call
// more than once.
func (c *Correlator) Close(err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	pending := c.pending
	c.pending = make(map[string]chan Outcome)
	c.mu.Unlock()

	for id, slot := range pending {
		c.log.Info("collapsing pending request on transport close", "id", id)
		slot <- Outcome{Err: err}
	}
}

// Len reports the number of currently outstanding requests. Intended for
// tests and diagnostics, not for control flow.
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
