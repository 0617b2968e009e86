package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "practice-backend/internal/auth"
	"practice-backend/internal/documents"
	"practice-backend/internal/papers"
	"practice-backend/internal/profiles"
	"practice-backend/internal/reminders"
	"practice-backend/internal/shared/config"
	"practice-backend/internal/shared/metrics"
	"practice-backend/internal/shared/server/middleware"
	"practice-backend/internal/shared/server/respond"
)

// Rate limit groups. Generation is expensive upstream so it gets a much
// tighter allowance than plain CRUD traffic.
const (
	rateGroupGenerate = "GENERATE"
	rateGroupEmails   = "EMAILS"
	rateGroupDefault  = "DEFAULT"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	DocumentHandler  *documents.Handler
	PaperHandler     *papers.Handler
	ProfileHandler   *profiles.Handler
	RemindersHandler *reminders.Handler
	GoogleAuth       *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupGenerate: {Rate: 0.2, Burst: 3},
				rateGroupEmails:   {Rate: 0.5, Burst: 5},
				rateGroupDefault:  {Rate: 10, Burst: 30},
			},
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
		}),
	)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.PaperHandler != nil {
		deps.PaperHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.RemindersHandler != nil {
		deps.RemindersHandler.RegisterRoutes(api)
	}

	return r
}

func rateGroupFor(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case c.Request.Method == http.MethodPost && strings.HasSuffix(path, "/tests/generate"):
		return rateGroupGenerate
	case c.Request.Method == http.MethodPost && strings.HasSuffix(path, "/emails"):
		return rateGroupEmails
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
