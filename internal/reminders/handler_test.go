package reminders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"practice-backend/internal/profiles"
	"practice-backend/internal/queue"
)

type recordingQueue struct {
	sent []queue.Message
	err  error
}

func (q *recordingQueue) Send(ctx context.Context, msg queue.Message) error {
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, msg)
	return nil
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	return r
}

func postAction(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestEnqueueDailyRemindersSendsBatchMessage(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	q := &recordingQueue{}
	h := NewHandler(NewService(profileSvc, &recordingMail{}, "https://app.example.com"), q)
	r := newTestRouter(h)

	w := postAction(t, r, `{"action":"enqueue_daily_reminders"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	if len(q.sent) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(q.sent))
	}
	msg := q.sent[0]
	if msg.Action != queue.ActionSendDailyReminders {
		t.Fatalf("unexpected action %q", msg.Action)
	}
	if msg.RequestID == "" || msg.EnqueuedAt == "" || msg.Version != 1 {
		t.Fatalf("incomplete message: %+v", msg)
	}

	var body struct {
		Success   bool   `json:"success"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.RequestID != msg.RequestID {
		t.Fatalf("response should echo the request id: %+v", body)
	}
}

func TestEnqueueDailyRemindersWithoutQueue(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	h := NewHandler(NewService(profileSvc, &recordingMail{}, "https://app.example.com"), nil)
	r := newTestRouter(h)

	w := postAction(t, r, `{"action":"enqueue_daily_reminders"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a queue backend, got %d", w.Code)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	h := NewHandler(NewService(profileSvc, &recordingMail{}, "https://app.example.com"), nil)
	r := newTestRouter(h)

	w := postAction(t, r, `{"action":"send_postcards"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
