package router

import (
	"context"

	"go.uber.org/zap"

	"github.com/avinava/panelhost/internal/message"
	"github.com/avinava/panelhost/internal/source"
	"github.com/avinava/panelhost/internal/state"
)

// Sink delivers outbound messages back to the originating surface.
type Sink interface {
	Send(out message.Outbound) error
}

// Notifier shows a user-facing notification on the host side.
type Notifier interface {
	Notify(text string)
}

// Observer receives routing events (metrics hook).
type Observer interface {
	MessageReceived(command string)
	MessageSent(command string)
	UnknownCommand()
}

// Router demultiplexes inbound messages by command and dispatches each to
// exactly one handler. Unrecognized commands are logged and dropped; no
// inbound message can crash the host.
type Router struct {
	data     source.Source
	states   *state.Store
	notifier Notifier
	logger   *zap.Logger
	observer Observer
}

// New creates a message router
func New(data source.Source, states *state.Store, notifier Notifier, logger *zap.Logger) *Router {
	return &Router{
		data:     data,
		states:   states,
		notifier: notifier,
		logger:   logger,
	}
}

// WithObserver attaches a routing observer
func (r *Router) WithObserver(obs Observer) *Router {
	r.observer = obs
	return r
}

// Dispatch routes one inbound message from the surface of the given panel
// kind. Handlers produce zero or one reply through the sink.
func (r *Router) Dispatch(ctx context.Context, kind string, in message.Inbound, reply Sink) {
	if !in.Known() {
		if r.observer != nil {
			r.observer.UnknownCommand()
		}
		r.logger.Debug("Ignoring unrecognized command",
			zap.String("command", string(in.Command)),
			zap.String("panel", kind),
		)
		return
	}

	if r.observer != nil {
		r.observer.MessageReceived(string(in.Command))
	}

	switch in.Command {
	case message.CmdAlert:
		r.handleAlert(in)
	case message.CmdGetData:
		r.handleGetData(ctx, in, reply)
	case message.CmdPing:
		r.send(reply, message.Pong())
	case message.CmdSetState:
		r.handleSetState(kind, in)
	case message.CmdGetState:
		r.handleGetState(kind, in, reply)
	}
}

// handleAlert shows exactly one notification; no reply goes back.
func (r *Router) handleAlert(in message.Inbound) {
	text := in.Text
	if text == "" {
		text = message.DefaultAlertText
	}
	r.notifier.Notify(text)
}

func (r *Router) handleGetData(ctx context.Context, in message.Inbound, reply Sink) {
	data, err := r.data.Fetch(ctx)
	if err != nil {
		r.logger.Warn("Data source failed", zap.Error(err))
		r.send(reply, message.Error("data source unavailable"))
		return
	}
	r.send(reply, message.DataResponse(in.RequestID, data))
}

func (r *Router) handleSetState(kind string, in message.Inbound) {
	if err := r.states.Set(kind, in.State); err != nil {
		r.logger.Warn("Failed to persist panel state",
			zap.String("panel", kind),
			zap.Error(err),
		)
	}
}

func (r *Router) handleGetState(kind string, in message.Inbound, reply Sink) {
	st, err := r.states.Get(kind)
	if err != nil {
		r.logger.Warn("Failed to load panel state",
			zap.String("panel", kind),
			zap.Error(err),
		)
		r.send(reply, message.Error("state unavailable"))
		return
	}
	r.send(reply, message.StateData(in.RequestID, st))
}

func (r *Router) send(reply Sink, out message.Outbound) {
	if err := reply.Send(out); err != nil {
		r.logger.Warn("Failed to send reply",
			zap.String("command", string(out.Command)),
			zap.Error(err),
		)
		return
	}
	if r.observer != nil {
		r.observer.MessageSent(string(out.Command))
	}
}
