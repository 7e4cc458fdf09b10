package sdk

import "github.com/gin-gonic/gin"

// MessageResponse is the body used for every non-record reply.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewMessage(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewErrorMessage carries the raw error text so callers can see what the store reported.
func NewErrorMessage(message string, err error) MessageResponse {
	response := MessageResponse{Message: message}
	if err != nil {
		response.Error = err.Error()
	}
	return response
}

// NewCreatedResponse builds `{message, <key>: data}`.
func NewCreatedResponse(message string, key string, data any) gin.H {
	return gin.H{
		"message": message,
		key:       data,
	}
}
