package profiles

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"practice-backend/internal/shared/server/middleware"
	"practice-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me/preferences", h.updatePreferences)
	rg.POST("/me/skip-today", h.skipToday)
}

type profileResponse struct {
	UserID         string `json:"userId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Picture        string `json:"picture,omitempty"`
	DailyReminders bool   `json:"dailyReminders"`
	SkipUntil      string `json:"skipUntil,omitempty"`
}

func toResponse(p Profile) profileResponse {
	resp := profileResponse{
		UserID:         p.ID,
		Email:          p.Email,
		Name:           p.Name,
		Picture:        p.Picture,
		DailyReminders: p.DailyReminders,
	}
	if p.SkipUntil != nil {
		resp.SkipUntil = p.SkipUntil.Format("2006-01-02")
	}
	return resp
}

func (h *Handler) me(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	p, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(p))
}

type updatePreferencesRequest struct {
	DailyReminders *bool `json:"dailyReminders"`
}

func (h *Handler) updatePreferences(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DailyReminders == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "dailyReminders is required", nil)
		return
	}

	if err := h.Svc.SetDailyReminders(c.Request.Context(), userID, *req.DailyReminders); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update preferences", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"dailyReminders": *req.DailyReminders})
}

func (h *Handler) skipToday(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.SkipToday(c.Request.Context(), userID, time.Now().UTC()); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to skip reminder", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"skipped": true})
}
