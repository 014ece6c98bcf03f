package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatic(t *testing.T) {
	got, err := Static{}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultMessage, got["message"])
}

func TestUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "from upstream", "items": [1, 2]}`))
	}))
	defer srv.Close()

	u := NewUpstream(srv.URL, 2*time.Second, zap.NewNop())

	got, err := u.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from upstream", got["message"])
}

func TestUpstreamFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	u := NewUpstream(srv.URL, time.Second, zap.NewNop())
	u.client.RetryMax = 0

	got, err := u.Fetch(context.Background())
	require.NoError(t, err, "upstream failure must not surface to the caller")
	assert.Equal(t, DefaultMessage, got["message"])
}

func TestUpstreamRejectsNonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"just a string"`))
	}))
	defer srv.Close()

	u := NewUpstream(srv.URL, time.Second, zap.NewNop())

	got, err := u.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultMessage, got["message"], "non-object payload falls back")
}

func TestNew(t *testing.T) {
	assert.IsType(t, Static{}, New("", time.Second, zap.NewNop()))
	assert.IsType(t, &Upstream{}, New("http://localhost:9", time.Second, zap.NewNop()))
}
