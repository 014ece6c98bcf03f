// Package router is the host-side message demultiplexer.
//
// Inbound messages are dispatched by their command discriminant against the
// fixed enumerated set; each message reaches exactly one handler, which
// produces zero or one reply for the originating surface. Unknown commands
// are logged at debug and dropped, never fatal, so older hosts stay
// compatible with newer surfaces.
//
// Handlers:
//   - alert: one user-facing notification (fallback text when none given)
//   - getData: one dataResponse from the configured data source
//   - ping: pong keep-alive
//   - setState/getState: opaque per-panel state slot
//
// Pending implements the request/response extension for host-initiated
// exchanges: identifier-keyed continuations that settle with the matching
// reply or fail after a fixed window with no retry.
package router
