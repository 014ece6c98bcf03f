package panel

import (
	"sync"
	"time"

	"github.com/avinava/panelhost/internal/shared/id"
)

// State represents panel lifecycle states
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// View is the native surface a panel draws on. The host treats it as an
// opaque handle: create, fill with markup, bring to front, release.
type View interface {
	SetHTML(html string)
	Reveal()
	Release() error
}

// Panel is a live UI surface instance. At most one exists per kind.
type Panel struct {
	ID        id.PanelID `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Origin    string     `json:"origin"`
	CreatedAt time.Time  `json:"created_at"`

	view View

	mu          sync.Mutex
	state       State
	disposables []func()
}

func newPanel(kind, title, origin string, view View) *Panel {
	return &Panel{
		ID:        id.NewPanelID(),
		Kind:      kind,
		Title:     title,
		Origin:    origin,
		CreatedAt: time.Now(),
		view:      view,
		state:     StateOpen,
	}
}

// State returns the current lifecycle state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// View returns the native surface handle.
func (p *Panel) View() View {
	return p.view
}

// OnDispose registers a cleanup action owned by this panel. Every action
// registered during the panel's lifetime runs exactly once at teardown.
// Registering on an already-closed panel runs the action immediately.
func (p *Panel) OnDispose(fn func()) {
	p.mu.Lock()
	if p.state == StateClosed {
		p.mu.Unlock()
		fn()
		return
	}
	p.disposables = append(p.disposables, fn)
	p.mu.Unlock()
}

// DisposableCount reports how many cleanup actions the panel currently owns.
func (p *Panel) DisposableCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.disposables)
}

// dispose marks the panel closed, runs each owned cleanup action exactly
// once and clears the list. Safe to call more than once; later calls find
// nothing left to release.
func (p *Panel) dispose() {
	p.mu.Lock()
	if p.state == StateClosed {
		p.mu.Unlock()
		return
	}
	p.state = StateClosed
	actions := p.disposables
	p.disposables = nil
	p.mu.Unlock()

	// Release in reverse registration order, subscriptions before their
	// owners.
	for i := len(actions) - 1; i >= 0; i-- {
		actions[i]()
	}
}
