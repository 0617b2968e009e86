package workerproc

import (
	"errors"
	"testing"

	"practice-backend/internal/queue"
)

func TestParseMessageValid(t *testing.T) {
	body := `{"action":"send_daily_reminders","requestId":"req-1","enqueuedAt":"2026-08-29T06:00:00Z","version":1}`

	msg, meta, err := ParseMessage(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if msg.Action != queue.ActionSendDailyReminders {
		t.Fatalf("unexpected action %q", msg.Action)
	}
	if msg.RequestID != "req-1" {
		t.Fatalf("unexpected request id %q", msg.RequestID)
	}
	if meta.BodyLen != len(body) {
		t.Fatalf("unexpected body length %d", meta.BodyLen)
	}
	if meta.BodySHA == "" {
		t.Fatal("expected a body hash")
	}
}

func TestParseMessageEmptyBody(t *testing.T) {
	_, _, err := ParseMessage("   ")
	var empty ErrEmptyBody
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestParseMessageMalformedJSON(t *testing.T) {
	_, meta, err := ParseMessage("{broken")
	var decode ErrDecode
	if !errors.As(err, &decode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if meta.BodyLen != len("{broken") {
		t.Fatalf("unexpected body length %d", meta.BodyLen)
	}
}

func TestParseMessageUnknownAction(t *testing.T) {
	_, _, err := ParseMessage(`{"action":"send_postcards","requestId":"req-2"}`)
	var unknown ErrUnknownAction
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if unknown.Action != "send_postcards" {
		t.Fatalf("unexpected action %q", unknown.Action)
	}
	if unknown.RequestID != "req-2" {
		t.Fatalf("unexpected request id %q", unknown.RequestID)
	}
}
