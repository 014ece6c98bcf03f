// Package config provides 12-factor configuration for the panel host.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Panels: manifest path, asset root, state directory, reply timeout
//   - Data: optional upstream URL for the getData payload
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Environment Variables:
//   - PORT, HOST
//   - PANEL_MANIFEST, PANEL_ASSET_ROOT, PANEL_STATE_DIR, PANEL_REPLY_TIMEOUT
//   - DATA_UPSTREAM_URL, DATA_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
