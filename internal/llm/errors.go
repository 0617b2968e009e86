package llm

import "errors"

// Sentinel errors classifying model call failures. Handlers map these onto
// stable API error codes.
var (
	ErrMissingAPIKey = errors.New("model api key is not configured")
	ErrInvalidAPIKey = errors.New("model api key was rejected")
	ErrAccessDenied  = errors.New("model access denied")
	ErrRateLimited   = errors.New("model rate limit exceeded")
	ErrNoResponse    = errors.New("model returned no content")
	ErrTimeout       = errors.New("model call timed out")
)
