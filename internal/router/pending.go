package router

import (
	"errors"
	"sync"
	"time"

	"github.com/avinava/panelhost/internal/message"
	"github.com/avinava/panelhost/internal/shared/id"
)

// DefaultReplyTimeout is how long a host-initiated request waits for the
// surface to answer before settling in failure. No retry follows.
const DefaultReplyTimeout = 5 * time.Second

// ErrReplyTimeout settles a continuation whose reply never arrived.
var ErrReplyTimeout = errors.New("no reply within the timeout window")

// Result settles a pending continuation: the surface's reply, or the
// timeout error.
type Result struct {
	Msg message.Inbound
	Err error
}

// Pending tracks host-initiated requests awaiting a surface reply, keyed
// by request ID. Each continuation settles exactly once: with the matching
// reply, or in failure when the window elapses.
type Pending struct {
	mu      sync.Mutex
	waiters map[id.RequestID]chan Result
	timeout time.Duration
}

// NewPending creates a tracker with the given reply window.
func NewPending(timeout time.Duration) *Pending {
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	return &Pending{
		waiters: make(map[id.RequestID]chan Result),
		timeout: timeout,
	}
}

// Track registers a fresh request ID and returns it with the channel the
// continuation settles on.
func (p *Pending) Track() (id.RequestID, <-chan Result) {
	reqID := id.NewRequestID()
	ch := make(chan Result, 1)

	p.mu.Lock()
	p.waiters[reqID] = ch
	p.mu.Unlock()

	// When the reply wins the race the expired timer finds no waiter left
	// and does nothing.
	time.AfterFunc(p.timeout, func() {
		if waiter := p.take(reqID); waiter != nil {
			waiter <- Result{Err: ErrReplyTimeout}
		}
	})

	return reqID, ch
}

// Settle delivers a reply to the continuation for reqID. Returns false
// when nothing is waiting (already settled, timed out, or never tracked).
func (p *Pending) Settle(reqID id.RequestID, msg message.Inbound) bool {
	waiter := p.take(reqID)
	if waiter == nil {
		return false
	}
	waiter <- Result{Msg: msg}
	return true
}

// Waiting reports how many requests are still unsettled.
func (p *Pending) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

// take removes and returns the waiter for reqID, or nil.
func (p *Pending) take(reqID id.RequestID) chan Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	waiter, ok := p.waiters[reqID]
	if !ok {
		return nil
	}
	delete(p.waiters, reqID)
	return waiter
}
