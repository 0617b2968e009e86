package papers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"practice-backend/internal/llm"
	"practice-backend/internal/questions"
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

// RegisterRoutes attaches test paper routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tests/generate", h.generate)
	rg.GET("/tests", h.list)
	rg.GET("/tests/:id", h.get)
	rg.PUT("/tests/:id", h.update)
	rg.POST("/tests/:id/submit", h.submit)
	rg.GET("/tests/:id/submissions", h.submissions)
}

type generateRequest struct {
	Prompt          string           `json:"prompt"`
	Title           string           `json:"title"`
	Difficulty      string           `json:"difficulty"`
	Type            string           `json:"type"`
	QuestionCount   int              `json:"questionCount"`
	SourceDocuments []SourceDocument `json:"sourceDocuments"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "INVALID_PARAMS", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), userID, GenerateRequest{
		Prompt:          req.Prompt,
		Title:           req.Title,
		Difficulty:      req.Difficulty,
		Type:            req.Type,
		QuestionCount:   req.QuestionCount,
		SourceDocuments: req.SourceDocuments,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.Set("paperId", result.Paper.ID)
	paper := toPaperResponse(result.Paper)
	respond.JSON(c, http.StatusCreated, gin.H{
		"questions":    paper.Questions,
		"paper":        paper,
		"modification": result.Modification,
		"usedFallback": result.UsedFallback,
	})
}

// writeGenerationError maps pipeline failures to stable error codes.
func writeGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidParams):
		respond.Error(c, http.StatusBadRequest, "INVALID_PARAMS", "Invalid request parameters", err.Error())
	case errors.Is(err, ErrInvalidQuestionCount):
		respond.Error(c, http.StatusBadRequest, "INVALID_QUESTION_COUNT",
			"Invalid question count",
			"Question count must be between 1 and 20 for optimal AI processing. Mobile users are recommended to use 5-10 questions.")
	case errors.Is(err, llm.ErrMissingAPIKey):
		respond.Error(c, http.StatusInternalServerError, "MISSING_API_KEY",
			"AI service not configured",
			"Gemini API key is not set up. Please contact the administrator to configure the AI service.")
	case errors.Is(err, llm.ErrInvalidAPIKey):
		respond.Error(c, http.StatusBadGateway, "INVALID_API_KEY", "Invalid API key for AI service", nil)
	case errors.Is(err, llm.ErrAccessDenied):
		respond.Error(c, http.StatusBadGateway, "ACCESS_DENIED", "AI service access denied. Please check API permissions.", nil)
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "RATE_LIMIT", "AI service rate limit exceeded. Please try again later.", nil)
	case errors.Is(err, llm.ErrTimeout):
		respond.Error(c, http.StatusGatewayTimeout, "TIMEOUT", "AI service did not respond in time. Please try again.", nil)
	case errors.Is(err, llm.ErrNoResponse):
		respond.Error(c, http.StatusBadGateway, "NO_AI_RESPONSE",
			"No response from AI service",
			"The AI service did not return any content. Please try again.")
	case errors.Is(err, ErrInvalidQuestions):
		respond.Error(c, http.StatusBadGateway, "INVALID_QUESTIONS",
			"Invalid questions generated",
			"The AI service returned invalid question data. Please try again.")
	default:
		respond.Error(c, http.StatusBadGateway, "GEMINI_API_ERROR", "Failed to generate questions with AI", err.Error())
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list tests", nil)
		return
	}

	resp := make([]PaperSummary, 0, len(list))
	for _, p := range list {
		resp = append(resp, toPaperSummary(p))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	paper, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "test paper not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch test", nil)
		return
	}

	c.Set("paperId", paper.ID)
	respond.JSON(c, http.StatusOK, toPaperResponse(paper))
}

type updateRequest struct {
	Title     string               `json:"title"`
	Questions []questions.Question `json:"questions"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	paper, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), UpdateRequest{
		Title:     req.Title,
		Questions: req.Questions,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "test paper not found", nil)
		case errors.Is(err, ErrInvalidQuestions):
			respond.Error(c, http.StatusBadRequest, "INVALID_QUESTIONS", "invalid question data", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update test", nil)
		}
		return
	}

	c.Set("paperId", paper.ID)
	respond.JSON(c, http.StatusOK, toPaperResponse(paper))
}

type submitRequest struct {
	Answers map[string]string `json:"answers"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	sub, err := h.Svc.Submit(c.Request.Context(), userID, c.Param("id"), req.Answers)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "test paper not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit answers", nil)
		return
	}

	c.Set("paperId", sub.PaperID)
	respond.JSON(c, http.StatusCreated, toSubmissionResponse(sub))
}

func (h *Handler) submissions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	subs, err := h.Svc.Submissions(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "test paper not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list submissions", nil)
		return
	}

	resp := make([]SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toSubmissionResponse(sub))
	}
	respond.JSON(c, http.StatusOK, resp)
}
