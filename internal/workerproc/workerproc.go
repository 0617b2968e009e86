package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"practice-backend/internal/bootstrap"
	"practice-backend/internal/queue"
	"practice-backend/internal/reminders"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrUnknownAction indicates a message whose action has no handler.
type ErrUnknownAction struct {
	Meta      MessageMeta
	Action    string
	RequestID string
}

func (e ErrUnknownAction) Error() string { return "unknown action: " + e.Action }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	Action    string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process reminder job"
	}
	return "process reminder job: " + e.Err.Error()
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if msg.Action != queue.ActionSendDailyReminders {
		return msg, meta, ErrUnknownAction{Meta: meta, Action: msg.Action, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// ReminderSender dispatches the daily reminder batch.
type ReminderSender interface {
	SendDailyReminders(ctx context.Context) ([]reminders.UserResult, error)
}

// HandleMessage parses, validates, and processes a message payload.
func HandleMessage(ctx context.Context, app *bootstrap.App, body string) error {
	if app == nil || app.RemindersService == nil {
		return errors.New("reminders service not configured")
	}
	var sender ReminderSender = app.RemindersService

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return err
		}
	}

	if msg.Action != queue.ActionSendDailyReminders {
		return ErrUnknownAction{Meta: ComputeMeta(body), Action: msg.Action, RequestID: msg.RequestID}
	}

	if _, err := sender.SendDailyReminders(ctx); err != nil {
		return ErrProcess{Action: msg.Action, RequestID: msg.RequestID, Err: err}
	}
	return nil
}
