// Package id provides centralized ID and nonce generation for the panel host.
//
// This package offers type-safe ULID generation with:
//   - Lexicographic sortability: Enables efficient time-based queries
//   - Prefixed types: Type-specific prefixes for debugging (panel_*, req_*)
//   - Performance: ~2μs per ULID with a shared entropy source
//
// It also generates content-security nonces: single-use random tokens that
// gate which inline script may execute in a rendered panel document. A nonce
// is never reused across renders.
package id

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// PanelID identifies a panel instance
type PanelID string

// RequestID identifies a pending request/response exchange
type RequestID string

// ID prefixes for debugging and type identification
const (
	PanelPrefix   = "panel"
	RequestPrefix = "req"
)

// NonceBytes is the entropy of a content-security nonce before encoding.
const NonceBytes = 24

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{
		entropy: rand.Reader,
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewPanelID creates a new panel instance ID
func NewPanelID() PanelID {
	return PanelID(Default().GenerateWithPrefix(PanelPrefix))
}

// NewRequestID creates a new request ID for a pending exchange
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// HasPrefix reports whether the raw ID carries the given type prefix.
func HasPrefix(raw, prefix string) bool {
	return strings.HasPrefix(raw, prefix+"_")
}

// NewNonce returns a fresh content-security nonce.
//
// The token is base64 (URL-safe, unpadded) so it can be embedded verbatim in
// both the CSP directive and the script tag attribute. Generation failure is
// a panic: a host that cannot read crypto/rand must not serve markup.
func NewNonce() string {
	buf := make([]byte, NonceBytes)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("id: nonce entropy unavailable: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
