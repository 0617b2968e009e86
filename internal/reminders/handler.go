package reminders

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"practice-backend/internal/queue"
	"practice-backend/internal/shared/server/respond"
	"practice-backend/internal/shared/telemetry"
)

// Handler exposes the email actions endpoint.
type Handler struct {
	Svc   *Service
	Queue queue.Client
}

// NewHandler constructs a Handler. The queue client may be nil when no
// queue backend is configured; the enqueue action then reports 503.
func NewHandler(svc *Service, queueClient queue.Client) *Handler {
	return &Handler{Svc: svc, Queue: queueClient}
}

// RegisterRoutes attaches email routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/emails", h.handleAction)
}

type emailActionRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

func (h *Handler) handleAction(c *gin.Context) {
	var req emailActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	switch req.Action {
	case "send_daily_reminders":
		results, err := h.Svc.SendDailyReminders(c.Request.Context())
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process email request", err.Error())
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"success": true, "results": results})

	case "enqueue_daily_reminders":
		h.enqueueDailyReminders(c)

	case "send_confirmation_email":
		if strings.TrimSpace(req.Email) == "" {
			respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
			return
		}
		if err := h.Svc.SendWelcome(c.Request.Context(), req.Email, req.UserName); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process email request", err.Error())
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"success": true})

	default:
		respond.Error(c, http.StatusBadRequest, "invalid_action", "Invalid action", nil)
	}
}

// enqueueDailyReminders hands the batch off to the queue so the worker
// sends the emails instead of this request.
func (h *Handler) enqueueDailyReminders(c *gin.Context) {
	if h.Queue == nil {
		respond.Error(c, http.StatusServiceUnavailable, "queue_unavailable", "no queue backend configured", nil)
		return
	}

	msg := queue.Message{
		Action:     queue.ActionSendDailyReminders,
		RequestID:  uuid.NewString(),
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := h.Queue.Send(c.Request.Context(), msg); err != nil {
		telemetry.Error("reminders.enqueue_failed", map[string]any{
			"request_id": msg.RequestID,
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to enqueue reminder job", err.Error())
		return
	}

	telemetry.Info("reminders.enqueued", map[string]any{"request_id": msg.RequestID})
	respond.JSON(c, http.StatusAccepted, gin.H{"success": true, "requestId": msg.RequestID})
}
