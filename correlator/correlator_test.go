package correlator

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/mcpcore/mcp-go/mcperr"
)

func TestRegisterDeliver(t *testing.T) {
	c := New(nil)
	slot := NewSlot()

	if err := c.Register("1", slot); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	c.Deliver("1", Outcome{Result: json.RawMessage(`{"ok":true}`)})

	outcome := <-slot
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if string(outcome.Result) != `{"ok":true}` {
		t.Errorf("unexpected result: %s", outcome.Result)
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after delivery = %d, want 0", got)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := New(nil)
	if err := c.Register("1", NewSlot()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := c.Register("1", NewSlot())
	if err == nil {
		t.Fatal("expected error on duplicate id")
	}
	if !mcperr.Is(err, mcperr.KindProtocol) {
		t.Errorf("expected KindProtocol, got %v", err)
	}
}

func TestDeliverUnknownID(t *testing.T) {
	c := New(nil)
	// Should not panic and should simply be dropped.
	c.Deliver("missing", Outcome{Result: json.RawMessage(`{}`)})
}

func TestCancel(t *testing.T) {
	c := New(nil)
	slot := NewSlot()
	if err := c.Register("1", slot); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	c.Cancel("1")
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after cancel = %d, want 0", got)
	}

	// A late delivery for the cancelled id is dropped, not delivered.
	c.Deliver("1", Outcome{Result: json.RawMessage(`{}`)})
	select {
	case <-slot:
		t.Error("expected no delivery after cancel")
	default:
	}
}

func TestClose_DrainsPending(t *testing.T) {
	c := New(nil)
	slots := make([]chan Outcome, 3)
	for i := range slots {
		slots[i] = NewSlot()
		id := string(rune('a' + i))
		if err := c.Register(id, slots[i]); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	closeErr := mcperr.ChannelClosed("transport closed")
	c.Close(closeErr)

	for _, slot := range slots {
		outcome := <-slot
		if !mcperr.Is(outcome.Err, mcperr.KindChannelClosed) {
			t.Errorf("expected KindChannelClosed, got %v", outcome.Err)
		}
	}
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after close = %d, want 0", got)
	}
}

func TestClose_Idempotent(t *testing.T) {
	c := New(nil)
	c.Close(mcperr.ChannelClosed("first"))
	c.Close(mcperr.ChannelClosed("second"))
}

func TestRegisterAfterClose(t *testing.T) {
	c := New(nil)
	c.Close(mcperr.ChannelClosed("closed"))

	err := c.Register("1", NewSlot())
	if err == nil {
		t.Fatal("expected error registering after close")
	}
	if !mcperr.Is(err, mcperr.KindChannelClosed) {
		t.Errorf("expected KindChannelClosed, got %v", err)
	}
}

func TestConcurrentRegisterDeliver(t *testing.T) {
	c := New(nil)
	const n = 50

	var wg sync.WaitGroup
	results := make([]Outcome, n)

	for i := 0; i < n; i++ {
		id := string(rune('A' + i%26))
		id += string(rune('0' + i/26))
		slot := NewSlot()
		if err := c.Register(id, slot); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		wg.Add(1)
		go func(idx int, id string, slot chan Outcome) {
			defer wg.Done()
			results[idx] = <-slot
		}(i, id, slot)

		go func(id string) {
			c.Deliver(id, Outcome{Result: json.RawMessage(`{"n":1}`)})
		}(id)
	}

	wg.Wait()
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
	}
}
