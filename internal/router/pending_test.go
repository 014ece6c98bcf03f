package router

import (
	"testing"
	"time"

	"github.com/avinava/panelhost/internal/message"
)

func TestPendingSettle(t *testing.T) {
	p := NewPending(time.Second)

	reqID, ch := p.Track()

	if !p.Settle(reqID, message.Inbound{Command: message.CmdPing}) {
		t.Fatal("Settle should find the waiter")
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			t.Errorf("Expected settled reply, got error %v", res.Err)
		}
		if res.Msg.Command != message.CmdPing {
			t.Errorf("Wrong reply: %+v", res.Msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Continuation never settled")
	}

	if p.Waiting() != 0 {
		t.Errorf("Settled request should be removed, %d waiting", p.Waiting())
	}
}

func TestPendingTimeout(t *testing.T) {
	p := NewPending(20 * time.Millisecond)

	_, ch := p.Track()

	select {
	case res := <-ch:
		if res.Err != ErrReplyTimeout {
			t.Errorf("Expected timeout error, got %v", res.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout never fired")
	}

	if p.Waiting() != 0 {
		t.Errorf("Timed-out request should be removed, %d waiting", p.Waiting())
	}
}

func TestPendingSettleOnce(t *testing.T) {
	p := NewPending(time.Second)

	reqID, _ := p.Track()

	if !p.Settle(reqID, message.Inbound{Command: message.CmdPing}) {
		t.Fatal("First settle should succeed")
	}
	if p.Settle(reqID, message.Inbound{Command: message.CmdPing}) {
		t.Error("Second settle must find nothing")
	}
}

func TestPendingSettleUnknown(t *testing.T) {
	p := NewPending(time.Second)

	if p.Settle("req_never_tracked", message.Inbound{}) {
		t.Error("Settling an untracked ID must be a no-op")
	}
}
