package message

import (
	"time"

	"github.com/bytedance/sonic"
)

// Command is the discriminant of the tagged message union. Every message
// exchanged between the host and a panel surface carries exactly one.
type Command string

// Surface → host commands
const (
	CmdAlert    Command = "alert"
	CmdGetData  Command = "getData"
	CmdPing     Command = "ping"
	CmdSetState Command = "setState"
	CmdGetState Command = "getState"
)

// Host → surface commands
const (
	CmdNotification Command = "notification"
	CmdDataResponse Command = "dataResponse"
	CmdPong         Command = "pong"
	CmdStateData    Command = "stateData"
	CmdSystem       Command = "system"
	CmdError        Command = "error"
)

// DefaultAlertText is used when an alert arrives without text.
const DefaultAlertText = "Hello from webview!"

// Inbound is a message received from a panel surface.
//
// Command is mandatory and drives dispatch; everything else is optional
// free-form payload. An absent or unknown command decodes fine and is
// handled (ignored) at the router, never at the codec.
type Inbound struct {
	Command   Command                `json:"command"`
	RequestID string                 `json:"request_id,omitempty"`
	Text      string                 `json:"text,omitempty"`
	State     map[string]interface{} `json:"state,omitempty"`
}

// Known reports whether the command belongs to the fixed inbound set.
func (in Inbound) Known() bool {
	switch in.Command {
	case CmdAlert, CmdGetData, CmdPing, CmdSetState, CmdGetState:
		return true
	}
	return false
}

// Outbound is a message sent from the host to a panel surface.
type Outbound struct {
	Command   Command     `json:"command"`
	RequestID string      `json:"request_id,omitempty"`
	Text      string      `json:"text,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Decode parses a raw frame into an Inbound message.
func Decode(raw []byte) (Inbound, error) {
	var in Inbound
	err := sonic.Unmarshal(raw, &in)
	return in, err
}

// Encode serializes an Outbound message for the wire.
func Encode(out Outbound) ([]byte, error) {
	return sonic.Marshal(out)
}

// Notification builds the user-facing notification reply for an alert.
func Notification(text string) Outbound {
	if text == "" {
		text = DefaultAlertText
	}
	return Outbound{
		Command:   CmdNotification,
		Text:      text,
		Timestamp: time.Now().Unix(),
	}
}

// DataResponse builds the reply to a getData request.
func DataResponse(requestID string, data interface{}) Outbound {
	return Outbound{
		Command:   CmdDataResponse,
		RequestID: requestID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
}

// Pong answers a keep-alive ping.
func Pong() Outbound {
	return Outbound{Command: CmdPong, Timestamp: time.Now().Unix()}
}

// StateData returns the panel's persisted state slot.
func StateData(requestID string, state map[string]interface{}) Outbound {
	return Outbound{
		Command:   CmdStateData,
		RequestID: requestID,
		Data:      state,
		Timestamp: time.Now().Unix(),
	}
}

// System builds a host status message (connection welcome and the like).
func System(text string) Outbound {
	return Outbound{
		Command:   CmdSystem,
		Text:      text,
		Timestamp: time.Now().Unix(),
	}
}

// Error builds an error reply. Errors are informational for the surface;
// the host never terminates a channel because a handler failed.
func Error(text string) Outbound {
	return Outbound{
		Command:   CmdError,
		Text:      text,
		Timestamp: time.Now().Unix(),
	}
}
