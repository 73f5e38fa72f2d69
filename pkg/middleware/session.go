package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionIDKey = "session_id"

// SessionMiddleware makes sure every browser carries a session cookie.
// The cookie value keys the visitor's trip in the session store.
func SessionMiddleware(cookieName string, ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
