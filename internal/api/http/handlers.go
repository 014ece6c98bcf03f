// Package http exposes the host's REST surface: panel lifecycle control,
// panel documents and health.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avinava/panelhost/internal/api/ws"
	"github.com/avinava/panelhost/internal/markup"
	"github.com/avinava/panelhost/internal/panel"
	"github.com/avinava/panelhost/internal/registry"
	"github.com/avinava/panelhost/internal/router"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	panels   *panel.Manager
	kinds    *registry.Registry
	surfaces *ws.Handler
	notifier router.Notifier
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	panels *panel.Manager,
	kinds *registry.Registry,
	surfaces *ws.Handler,
	notifier router.Notifier,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		panels:   panels,
		kinds:    kinds,
		surfaces: surfaces,
		notifier: notifier,
		logger:   logger,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Panel Host",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"panels": h.panels.Stats(),
		"kinds":  len(h.kinds.List()),
	})
}

// ListKinds lists the declared panel kinds
func (h *Handlers) ListKinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": h.kinds.List()})
}

// ListPanels lists all live panels
func (h *Handlers) ListPanels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"panels": h.panels.List(),
		"stats":  h.panels.Stats(),
	})
}

type openRequest struct {
	Origin string `json:"origin"`
}

// OpenPanel opens the singleton panel for a kind, or reveals the live one.
func (h *Handlers) OpenPanel(c *gin.Context) {
	kindName := c.Param("kind")

	kind, ok := h.kinds.Get(kindName)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown panel kind"})
		return
	}

	var req openRequest
	c.ShouldBindJSON(&req) // body is optional
	if req.Origin == "" {
		req.Origin = "api:open"
	}

	p, created, err := h.panels.OpenOrReveal(kind.Name, kind.Title, req.Origin)
	if err != nil {
		// A missing bundled asset is user trouble, not a server fault:
		// notify and abort the open.
		if errors.Is(err, markup.ErrAssetMissing) {
			h.notifier.Notify("Cannot open panel: " + err.Error())
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to open panel", zap.String("kind", kind.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"panel":   p,
		"created": created,
	})
}

// ClosePanel disposes the live panel for a kind
func (h *Handlers) ClosePanel(c *gin.Context) {
	kind := c.Param("kind")

	closed := h.panels.Dispose(kind)

	c.JSON(http.StatusOK, gin.H{
		"closed": closed,
		"kind":   kind,
	})
}

// PanelView serves the rendered document of an open panel
func (h *Handlers) PanelView(c *gin.Context) {
	kind := c.Param("kind")

	html, ok := h.surfaces.Document(kind)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no open panel of kind " + kind})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
