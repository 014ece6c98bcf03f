package panel

import (
	"fmt"
	"sync"
)

// Renderer produces the initial markup for a panel kind.
type Renderer interface {
	Render(kind string) (string, error)
}

// ViewFactory creates native views for dependency injection.
type ViewFactory interface {
	Create(kind, title string) (View, error)
}

// Observer receives lifecycle notifications (metrics hook).
type Observer interface {
	PanelOpened(kind string)
	PanelRevealed(kind string)
	PanelClosed(kind string)
}

// Manager orchestrates panel lifecycle. It owns the singleton slot per
// panel kind: open requests either create an instance or reveal the live
// one, and dispose clears the slot after running the owned cleanups.
type Manager struct {
	panels   sync.Map // kind -> *Panel
	mu       sync.RWMutex
	focused  *string
	views    ViewFactory
	renderer Renderer
	observer Observer
}

// NewManager creates a new panel manager
func NewManager(views ViewFactory, renderer Renderer) *Manager {
	return &Manager{
		views:    views,
		renderer: renderer,
	}
}

// WithObserver attaches a lifecycle observer
func (m *Manager) WithObserver(obs Observer) *Manager {
	m.observer = obs
	return m
}

// OpenOrReveal returns the live panel for kind, bringing its view to the
// foreground; if none exists it constructs one bound to a fresh native
// view, renders the initial markup and stores it as the singleton.
// The second return reports whether a new instance was created.
func (m *Manager) OpenOrReveal(kind, title, origin string) (*Panel, bool, error) {
	if existing, ok := m.Get(kind); ok {
		existing.view.Reveal()
		m.setFocused(kind)
		if m.observer != nil {
			m.observer.PanelRevealed(kind)
		}
		return existing, false, nil
	}

	html, err := m.renderer.Render(kind)
	if err != nil {
		return nil, false, fmt.Errorf("failed to render panel %s: %w", kind, err)
	}

	view, err := m.views.Create(kind, title)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create view for panel %s: %w", kind, err)
	}
	view.SetHTML(html)

	p := newPanel(kind, title, origin, view)

	// A concurrent open may have won the slot; release ours and reveal
	// the winner so the singleton invariant holds.
	if prev, loaded := m.panels.LoadOrStore(kind, p); loaded {
		view.Release()
		winner := prev.(*Panel)
		winner.view.Reveal()
		m.setFocused(kind)
		return winner, false, nil
	}

	m.setFocused(kind)
	if m.observer != nil {
		m.observer.PanelOpened(kind)
	}
	return p, true, nil
}

// Get retrieves the live panel for a kind
func (m *Manager) Get(kind string) (*Panel, bool) {
	val, ok := m.panels.Load(kind)
	if !ok {
		return nil, false
	}
	return val.(*Panel), true
}

// List returns all live panels
func (m *Manager) List() []*Panel {
	var panels []*Panel
	m.panels.Range(func(_, value interface{}) bool {
		panels = append(panels, value.(*Panel))
		return true
	})
	return panels
}

// Dispose tears down the panel for kind: runs every owned cleanup action
// exactly once, releases the native view and clears the singleton slot.
// Returns false when no live panel exists, which also makes repeat calls
// no-ops.
func (m *Manager) Dispose(kind string) bool {
	val, loaded := m.panels.LoadAndDelete(kind)
	if !loaded {
		return false
	}
	p := val.(*Panel)

	p.dispose()
	p.view.Release()

	m.mu.Lock()
	if m.focused != nil && *m.focused == kind {
		m.focused = nil
	}
	m.mu.Unlock()

	if m.observer != nil {
		m.observer.PanelClosed(kind)
	}
	return true
}

// DisposeAll tears down every live panel (shutdown path).
func (m *Manager) DisposeAll() {
	m.panels.Range(func(key, _ interface{}) bool {
		m.Dispose(key.(string))
		return true
	})
}

// Stats contains manager statistics
type Stats struct {
	OpenPanels  int     `json:"open_panels"`
	FocusedKind *string `json:"focused_kind,omitempty"`
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	var open int
	m.panels.Range(func(_, _ interface{}) bool {
		open++
		return true
	})

	m.mu.RLock()
	focused := m.focused
	m.mu.RUnlock()

	return Stats{
		OpenPanels:  open,
		FocusedKind: focused,
	}
}

func (m *Manager) setFocused(kind string) {
	m.mu.Lock()
	m.focused = &kind
	m.mu.Unlock()
}
