package ws

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avinava/panelhost/internal/markup"
	"github.com/avinava/panelhost/internal/message"
	"github.com/avinava/panelhost/internal/panel"
	"github.com/avinava/panelhost/internal/registry"
	"github.com/avinava/panelhost/internal/router"
	"github.com/avinava/panelhost/internal/source"
	"github.com/avinava/panelhost/internal/state"
)

type chanNotifier struct {
	shown chan string
}

func (n *chanNotifier) Notify(text string) {
	n.shown <- text
}

type fixture struct {
	handler  *Handler
	manager  *panel.Manager
	notifier *chanNotifier
	server   *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.js"), []byte("// ui"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644))

	reg := registry.New()
	reg.SeedDefault()
	gen := markup.NewGenerator(reg, root, "/assets", "ws://127.0.0.1")

	notifier := &chanNotifier{shown: make(chan string, 8)}
	rt := router.New(source.Static{}, state.NewStore(t.TempDir()), notifier, zap.NewNop())
	pending := router.NewPending(200 * time.Millisecond)

	handler := NewHandler(rt, pending, zap.NewNop())
	manager := panel.NewManager(handler, gen)
	handler.SetManager(manager)

	engine := gin.New()
	engine.GET("/stream", handler.HandleConnection)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &fixture{handler: handler, manager: manager, notifier: notifier, server: server}
}

func (f *fixture) dial(t *testing.T, kind string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream?panel=" + kind
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readOutbound(t *testing.T, conn *websocket.Conn) message.Outbound {
	t.Helper()

	var out message.Outbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestConnectAndWelcome(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.manager.OpenOrReveal("webview", "Webview Panel", "test")
	require.NoError(t, err)

	conn := f.dial(t, "webview")

	welcome := readOutbound(t, conn)
	assert.Equal(t, message.CmdSystem, welcome.Command)
}

func TestGetDataRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	conn := f.dial(t, "webview")
	readOutbound(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(map[string]string{
		"command":    "getData",
		"request_id": "req_42",
	}))

	reply := readOutbound(t, conn)
	assert.Equal(t, message.CmdDataResponse, reply.Command)
	assert.Equal(t, "req_42", reply.RequestID)
	data, ok := reply.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, source.DefaultMessage, data["message"])
}

func TestAlertShowsNotification(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	conn := f.dial(t, "webview")
	readOutbound(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(map[string]string{"command": "alert", "text": "hi"}))

	select {
	case shown := <-f.notifier.shown:
		assert.Equal(t, "hi", shown)
	case <-time.After(2 * time.Second):
		t.Fatal("Notification never shown")
	}
}

func TestUnknownCommandIgnored(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	conn := f.dial(t, "webview")
	readOutbound(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(map[string]string{"command": "resizeWindow"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"command": "ping"}))

	// Only the ping produces a reply; the unknown command was dropped.
	reply := readOutbound(t, conn)
	assert.Equal(t, message.CmdPong, reply.Command)
}

func TestMalformedFrameIgnored(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	conn := f.dial(t, "webview")
	readOutbound(t, conn) // welcome

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"command": "ping"}))

	reply := readOutbound(t, conn)
	assert.Equal(t, message.CmdPong, reply.Command)
}

func TestChannelAcquiredOnce(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	first := f.dial(t, "webview")
	readOutbound(t, first) // welcome

	second := f.dial(t, "webview")
	rejection := readOutbound(t, second)
	assert.Equal(t, message.CmdError, rejection.Command)

	// The first channel keeps working.
	require.NoError(t, first.WriteJSON(map[string]string{"command": "ping"}))
	reply := readOutbound(t, first)
	assert.Equal(t, message.CmdPong, reply.Command)
}

func TestConnectWithoutOpenPanel(t *testing.T) {
	f := newFixture(t)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream?panel=webview"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDisposeClosesChannel(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	conn := f.dial(t, "webview")
	readOutbound(t, conn) // welcome

	require.True(t, f.manager.Dispose("webview"))

	// The server side hangs up; the next read fails.
	var out message.Outbound
	err := conn.ReadJSON(&out)
	assert.Error(t, err)
}

// barrierRenderer holds every render until all expected callers arrive, so
// concurrent opens of the same kind all pass the singleton check first.
type barrierRenderer struct {
	gate *sync.WaitGroup
}

func (r barrierRenderer) Render(kind string) (string, error) {
	r.gate.Done()
	r.gate.Wait()
	return "<html>" + kind + "</html>", nil
}

func TestConcurrentOpenKeepsDocument(t *testing.T) {
	notifier := &chanNotifier{shown: make(chan string, 8)}
	rt := router.New(source.Static{}, state.NewStore(t.TempDir()), notifier, zap.NewNop())

	var gate sync.WaitGroup
	gate.Add(2)

	handler := NewHandler(rt, router.NewPending(time.Second), zap.NewNop())
	manager := panel.NewManager(handler, barrierRenderer{gate: &gate})
	handler.SetManager(manager)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := manager.OpenOrReveal("webview", "Webview Panel", "test")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// The losing open released its own view; the winner's document must
	// still be servable.
	_, ok := manager.Get("webview")
	require.True(t, ok)
	html, ok := handler.Document("webview")
	require.True(t, ok, "live panel must keep its rendered document")
	assert.Contains(t, html, "webview")
}

func TestRequestTimesOut(t *testing.T) {
	f := newFixture(t)
	f.manager.OpenOrReveal("webview", "Webview Panel", "test")

	conn := f.dial(t, "webview")
	readOutbound(t, conn) // welcome

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := f.handler.Request(ctx, "webview", message.System("surface-state"))
	assert.ErrorIs(t, err, router.ErrReplyTimeout)
}
