// Package server wires the panel host together: configuration, logging,
// metrics, the panel kind registry, the markup generator, the message
// router and both API surfaces (REST and the WebSocket channel) on one gin
// engine.
package server
