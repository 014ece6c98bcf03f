// Command server runs the panel host: it serves panel documents and
// assets over HTTP, relays surface messages over WebSocket and exposes
// panel lifecycle control plus Prometheus metrics.
package main
