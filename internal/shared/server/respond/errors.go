package respond

import "github.com/gin-gonic/gin"

// ErrorBody is the error envelope returned by every failing endpoint.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Error writes a structured error response and aborts the request.
func Error(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: ErrorBody{Code: code, Message: message, Details: details}})
}
