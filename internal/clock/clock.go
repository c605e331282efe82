// Package clock provides the one-second interval ticker all session
// timers are built on.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a running ticker so it can be stopped.
type Handle interface {
	stop()
}

// Clock fires a callback once per elapsed second until stopped.
// Callers must hold at most one active handle at a time; starting a
// second ticker without stopping the first produces duplicate ticks.
type Clock interface {
	// Start begins ticking and invokes onTick once per second.
	Start(onTick func()) Handle

	// Stop cancels the given handle. Stopping an already-stopped
	// handle is a no-op.
	Stop(h Handle)
}

// Ticker is the production Clock backed by time.Ticker.
type Ticker struct{}

// NewTicker returns a real-time Clock.
func NewTicker() *Ticker {
	return &Ticker{}
}

type tickerHandle struct {
	done chan struct{}
	once sync.Once
}

func (h *tickerHandle) stop() {
	h.once.Do(func() { close(h.done) })
}

func (t *Ticker) Start(onTick func()) Handle {
	h := &tickerHandle{done: make(chan struct{})}
	go func() {
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-tick.C:
				onTick()
			}
		}
	}()
	return h
}

func (t *Ticker) Stop(h Handle) {
	if h != nil {
		h.stop()
	}
}

// Manual is a Clock driven by explicit Advance calls, for tests.
type Manual struct {
	mu     sync.Mutex
	active *manualHandle
}

// NewManual returns a Clock that only ticks when Advance is called.
func NewManual() *Manual {
	return &Manual{}
}

type manualHandle struct {
	owner   *Manual
	onTick  func()
	stopped bool
}

func (h *manualHandle) stop() {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	h.stopped = true
	if h.owner.active == h {
		h.owner.active = nil
	}
}

func (m *Manual) Start(onTick func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &manualHandle{owner: m, onTick: onTick}
	m.active = h
	return h
}

func (m *Manual) Stop(h Handle) {
	if h != nil {
		h.stop()
	}
}

// Advance fires n ticks against the active handle, if any.
func (m *Manual) Advance(n int) {
	for range n {
		m.mu.Lock()
		h := m.active
		m.mu.Unlock()
		if h == nil || h.stopped {
			return
		}
		h.onTick()
	}
}

// Running reports whether a handle is currently ticking.
func (m *Manual) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}
