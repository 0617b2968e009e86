package papers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"practice-backend/internal/llm"
)

func newTestRouter(client llm.Client) (*gin.Engine, *Service) {
	gin.SetMode(gin.TestMode)
	svc := newService(client)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:test-guest")
		c.Next()
	})
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r, svc
}

func TestGenerateEndpointCreatesPaper(t *testing.T) {
	r, _ := newTestRouter(&stubLLM{response: validQuestionsJSON(2)})

	body := `{"prompt":"Generate questions about rivers","difficulty":"easy","type":"descriptive","questionCount":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var decoded struct {
		Paper        PaperResponse `json:"paper"`
		Modification bool          `json:"modification"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Paper.QuestionCount != 2 {
		t.Fatalf("expected 2 questions, got %d", decoded.Paper.QuestionCount)
	}
	if decoded.Modification {
		t.Fatal("expected generation, not modification")
	}
}

func TestGenerateEndpointInvalidCount(t *testing.T) {
	r, _ := newTestRouter(&stubLLM{response: validQuestionsJSON(2)})

	body := `{"prompt":"Generate questions about rivers","difficulty":"easy","type":"descriptive","questionCount":99}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "INVALID_QUESTION_COUNT") {
		t.Fatalf("expected INVALID_QUESTION_COUNT code, got %s", resp.Body.String())
	}
}

func TestGenerateEndpointMapsLLMErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		wantCode string
	}{
		{llm.ErrMissingAPIKey, http.StatusInternalServerError, "MISSING_API_KEY"},
		{llm.ErrInvalidAPIKey, http.StatusBadGateway, "INVALID_API_KEY"},
		{llm.ErrAccessDenied, http.StatusBadGateway, "ACCESS_DENIED"},
		{llm.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMIT"},
		{llm.ErrTimeout, http.StatusGatewayTimeout, "TIMEOUT"},
		{llm.ErrNoResponse, http.StatusBadGateway, "NO_AI_RESPONSE"},
	}

	for _, tc := range cases {
		r, _ := newTestRouter(&stubLLM{err: tc.err})

		body := `{"prompt":"Generate questions about rivers","difficulty":"easy","type":"mcq","questionCount":3}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/generate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		if resp.Code != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), tc.wantCode) {
			t.Errorf("%v: expected code %s in %s", tc.err, tc.wantCode, resp.Body.String())
		}
	}
}

func TestGetEndpointNotFound(t *testing.T) {
	r, _ := newTestRouter(&stubLLM{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tests/does-not-exist", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSubmitEndpointScores(t *testing.T) {
	r, svc := newTestRouter(&stubLLM{response: validQuestionsJSON(1)})

	result, err := svc.Generate(context.Background(), "guest:test-guest", GenerateRequest{
		Prompt:        "Generate questions about lakes",
		Difficulty:    "easy",
		Type:          "descriptive",
		QuestionCount: 1,
	})
	if err != nil {
		t.Fatalf("seed paper: %v", err)
	}

	body := `{"answers":{"q1":"my answer"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tests/"+result.Paper.ID+"/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var sub SubmissionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &sub); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sub.MaxScore != 5 {
		t.Fatalf("expected max score 5, got %d", sub.MaxScore)
	}
}
