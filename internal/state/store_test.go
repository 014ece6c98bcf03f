package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Set("webview", map[string]interface{}{"count": float64(3)}))

	got, err := s.Get("webview")
	require.NoError(t, err)
	assert.Equal(t, float64(3), got["count"])
}

func TestGetAbsent(t *testing.T) {
	s := NewStore(t.TempDir())

	got, err := s.Get("webview")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSurvivesReload(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(dir)
	require.NoError(t, first.Set("webview", map[string]interface{}{"scroll": float64(120)}))

	// Fresh store simulates a host restart; state comes back from disk.
	second := NewStore(dir)
	got, err := second.Get("webview")
	require.NoError(t, err)
	assert.Equal(t, float64(120), got["scroll"])
}

func TestMutationDoesNotReachCache(t *testing.T) {
	s := NewStore(t.TempDir())

	stored := map[string]interface{}{"count": float64(1)}
	require.NoError(t, s.Set("webview", stored))
	stored["count"] = float64(99)

	got, err := s.Get("webview")
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["count"], "mutating the caller's map must not alter the slot")

	got["count"] = float64(7)
	again, err := s.Get("webview")
	require.NoError(t, err)
	assert.Equal(t, float64(1), again["count"], "mutating a returned map must not alter the slot")
}

func TestDelete(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Set("webview", map[string]interface{}{"a": "b"}))
	require.NoError(t, s.Delete("webview"))
	require.NoError(t, s.Delete("webview"), "deleting an absent slot is a no-op")

	got, err := s.Get("webview")
	require.NoError(t, err)
	assert.Empty(t, got)
}
