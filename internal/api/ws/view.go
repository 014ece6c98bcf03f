package ws

import (
	"sync"

	"github.com/avinava/panelhost/internal/message"
	"github.com/avinava/panelhost/internal/panel"
)

// View binds a panel's native surface to this handler: the rendered
// document is what the browser loads, reveal is a push over the channel.
// The document lives on the view itself, so releasing one view can never
// touch the state of another view of the same kind.
type View struct {
	handler *Handler
	kind    string

	mu   sync.Mutex
	html string
}

// Create implements panel.ViewFactory.
func (h *Handler) Create(kind, title string) (panel.View, error) {
	return &View{handler: h, kind: kind}, nil
}

// SetHTML stores the rendered document for serving.
func (v *View) SetHTML(html string) {
	v.mu.Lock()
	v.html = html
	v.mu.Unlock()
}

// Reveal asks the surface to bring itself to the foreground. A surface
// that has not connected yet simply loads in front when it does.
func (v *View) Reveal() {
	v.handler.Push(v.kind, message.System("reveal"))
}

// Release drops this view's document. The surface channel is owned by the
// panel's dispose hook, not the view: a view that lost the singleton slot
// to a concurrent open releases without disturbing the winner's channel.
func (v *View) Release() error {
	v.mu.Lock()
	v.html = ""
	v.mu.Unlock()
	return nil
}

func (v *View) document() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.html, v.html != ""
}

// Document returns the rendered page of the live panel for a kind. The
// lookup goes through the panel manager, so only the view holding the
// singleton slot is ever consulted.
func (h *Handler) Document(kind string) (string, bool) {
	p, ok := h.panels.Get(kind)
	if !ok {
		return "", false
	}
	v, ok := p.View().(*View)
	if !ok {
		return "", false
	}
	return v.document()
}
