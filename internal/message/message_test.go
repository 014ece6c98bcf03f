package message

import (
	"strings"
	"testing"
)

func TestDecodeAlert(t *testing.T) {
	in, err := Decode([]byte(`{"command": "alert", "text": "hi"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if in.Command != CmdAlert {
		t.Errorf("Expected alert command, got %q", in.Command)
	}
	if in.Text != "hi" {
		t.Errorf("Expected text 'hi', got %q", in.Text)
	}
	if !in.Known() {
		t.Error("alert should be a known command")
	}
}

func TestDecodeMissingCommand(t *testing.T) {
	in, err := Decode([]byte(`{"text": "orphan"}`))
	if err != nil {
		t.Fatalf("A message without a command must still decode: %v", err)
	}

	if in.Known() {
		t.Error("Empty command must not be known")
	}
}

func TestDecodeUnknownCommand(t *testing.T) {
	in, err := Decode([]byte(`{"command": "launchMissiles"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if in.Known() {
		t.Error("Unrecognized command must not be known")
	}
}

func TestNotificationFallback(t *testing.T) {
	out := Notification("")

	if out.Text != DefaultAlertText {
		t.Errorf("Expected fallback %q, got %q", DefaultAlertText, out.Text)
	}
	if out.Command != CmdNotification {
		t.Errorf("Expected notification command, got %q", out.Command)
	}
}

func TestEncodeDataResponse(t *testing.T) {
	out := DataResponse("req_123", map[string]interface{}{"message": "Hello from extension!"})

	raw, err := Encode(out)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	s := string(raw)
	if !strings.Contains(s, `"command":"dataResponse"`) {
		t.Errorf("Encoded frame missing command tag: %s", s)
	}
	if !strings.Contains(s, "Hello from extension!") {
		t.Errorf("Encoded frame missing payload: %s", s)
	}
}

func TestOutboundOmitsEmptyFields(t *testing.T) {
	raw, err := Encode(Pong())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	s := string(raw)
	if strings.Contains(s, "request_id") || strings.Contains(s, "data") {
		t.Errorf("Empty optional fields should be omitted: %s", s)
	}
}
