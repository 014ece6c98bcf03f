package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/avinava/panelhost/internal/message"
	"github.com/avinava/panelhost/internal/panel"
	"github.com/avinava/panelhost/internal/router"
	"github.com/avinava/panelhost/internal/shared/id"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Surfaces are served by this host; dev asset servers differ only in port
	},
}

// ConnMetrics counts surface channels (metrics hook).
type ConnMetrics interface {
	IncWSConnections()
	DecWSConnections()
}

// Handler manages the message channel of each panel surface.
//
// A surface acquires its channel exactly once: a second connection for a
// kind whose channel is still live is rejected. Inbound messages go through
// the router; replies to host-initiated requests settle their pending
// continuation instead.
type Handler struct {
	panels  *panel.Manager
	router  *router.Router
	pending *router.Pending
	logger  *zap.Logger
	metrics ConnMetrics

	conns sync.Map // kind -> *Conn
}

// NewHandler creates a new WebSocket handler
func NewHandler(rt *router.Router, pending *router.Pending, logger *zap.Logger) *Handler {
	return &Handler{
		router:  rt,
		pending: pending,
		logger:  logger,
	}
}

// SetManager wires the panel manager. Separate from the constructor because
// the manager's view factory is this handler.
func (h *Handler) SetManager(m *panel.Manager) {
	h.panels = m
}

// WithMetrics attaches connection metrics
func (h *Handler) WithMetrics(m ConnMetrics) *Handler {
	h.metrics = m
	return h
}

// HandleConnection upgrades a surface connection and runs its read loop.
// Route shape: GET /stream?panel=<kind>.
func (h *Handler) HandleConnection(c *gin.Context) {
	kind := c.Query("panel")
	if kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "panel query parameter is required"})
		return
	}

	p, ok := h.panels.Get(kind)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no open panel of kind %s", kind)})
		return
	}

	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	conn := &Conn{conn: raw}

	if _, acquired := h.conns.LoadOrStore(kind, conn); acquired {
		// The communication handle is acquired once per surface lifetime.
		conn.Send(message.Error("channel already acquired for this panel"))
		raw.Close()
		return
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	h.logger.Info("Surface channel acquired", zap.String("panel", kind))

	// Closing the panel tears the channel down with it.
	p.OnDispose(func() {
		h.dropConn(kind, conn)
	})

	conn.Send(message.System("Connected to panel host"))

	h.readLoop(c.Request.Context(), kind, conn)

	h.dropConn(kind, conn)
	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
	h.logger.Info("Surface channel released", zap.String("panel", kind))
}

// readLoop drains the channel until it closes. Messages are handled one at
// a time in arrival order; a handler that needs I/O blocks only this
// surface's queue.
func (h *Handler) readLoop(ctx context.Context, kind string, conn *Conn) {
	for {
		_, raw, err := conn.conn.ReadMessage()
		if err != nil {
			return
		}

		in, err := message.Decode(raw)
		if err != nil {
			// Malformed frames are logged, never fatal.
			h.logger.Warn("Dropping malformed message",
				zap.String("panel", kind),
				zap.Error(err),
			)
			continue
		}

		// Replies to host-initiated requests settle their continuation
		// instead of dispatching.
		if !in.Known() && in.RequestID != "" {
			if h.pending.Settle(id.RequestID(in.RequestID), in) {
				continue
			}
		}

		h.router.Dispatch(ctx, kind, in, conn)
	}
}

// Push sends a message to the surface of the given kind, if connected.
func (h *Handler) Push(kind string, out message.Outbound) error {
	val, ok := h.conns.Load(kind)
	if !ok {
		return fmt.Errorf("no surface channel for panel %s", kind)
	}
	return val.(*Conn).Send(out)
}

// Request sends a host-initiated request to the surface and waits for the
// reply. The continuation settles in failure after the pending window; no
// retry follows.
func (h *Handler) Request(ctx context.Context, kind string, out message.Outbound) (message.Inbound, error) {
	reqID, ch := h.pending.Track()
	out.RequestID = string(reqID)

	if err := h.Push(kind, out); err != nil {
		return message.Inbound{}, err
	}

	select {
	case res := <-ch:
		return res.Msg, res.Err
	case <-ctx.Done():
		return message.Inbound{}, ctx.Err()
	}
}

// dropConn closes and unregisters the channel if it is still the one bound
// to kind. A newer channel for the same kind stays untouched.
func (h *Handler) dropConn(kind string, conn *Conn) {
	if val, ok := h.conns.Load(kind); ok && val.(*Conn) == conn {
		h.conns.Delete(kind)
	}
	conn.Close()
}

// Conn is one surface channel. Writes are serialized; delivery per channel
// is FIFO.
type Conn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Send implements router.Sink.
func (c *Conn) Send(out message.Outbound) error {
	data, err := message.Encode(out)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", out.Command, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}
