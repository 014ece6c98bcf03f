// Package markup renders the static document for a panel surface.
//
// The document embeds a strict content policy: default-src 'none', the
// bundled stylesheet as the only style source, and a script-src locked to a
// nonce generated fresh for each render. An injected script lacking the
// current nonce will not execute.
//
// Missing assets are detected at render time and reported via
// ErrAssetMissing so the host can surface a notification instead of serving
// a broken page.
package markup
