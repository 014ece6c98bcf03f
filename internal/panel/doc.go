// Package panel provides panel lifecycle management for the host.
//
// This package owns the singleton slot per panel kind: at most one live
// instance exists at any time, open requests either create or reveal, and
// teardown releases the native view plus every cleanup action the panel
// registered during its lifetime, exactly once.
//
// Key Components:
//   - Manager: Central lifecycle coordinator (OpenOrReveal, Dispose)
//   - Panel: Live instance with its view handle and owned disposables
//   - View/ViewFactory: Opaque native surface, injected for testability
//
// State machine: Closed → Open (open request), Open → Open (repeat open,
// reveal only), Open → Closed (dispose), terminal.
//
// Example Usage:
//
//	manager := panel.NewManager(views, renderer)
//	p, created, err := manager.OpenOrReveal("preview", "Preview", "command:open")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.OnDispose(func() { subscription.Cancel() })
//	manager.Dispose("preview")
package panel
