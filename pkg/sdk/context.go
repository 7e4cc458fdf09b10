package sdk

import (
	"github.com/gin-gonic/gin"
)

// Session identifies the caller as forwarded by the gateway. It is used for
// log attribution only; nothing is authorized on it.
type Session struct {
	Id       string `json:"id"`
	Username string `json:"username"`
}

func SessionFromRequest(c *gin.Context) Session {
	return Session{
		Id:       c.GetHeader("x-user-session"),
		Username: c.GetHeader("x-user-id"),
	}
}
