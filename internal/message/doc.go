// Package message defines the typed contract exchanged between the host and
// its panel surfaces.
//
// Messages form a tagged union keyed by a mandatory `command` field. The
// variant set is fixed at build time; unknown commands decode without error
// and are dropped at the router, keeping older hosts forward compatible with
// newer surfaces.
//
// Surface → host: alert, getData, ping, setState, getState
// Host → surface: notification, dataResponse, pong, stateData, system, error
//
// Every message is ephemeral: it exists for one send/receive cycle and is
// never persisted.
package message
