package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itz-me-mohammed/CalTrack/utils"
)

const sessionKey = "session"

// Session is the authenticated caller, resolved once per request from the
// bearer token and carried explicitly in the request context.
type Session struct {
	UserID uuid.UUID
	Email  string
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, email, err := utils.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(sessionKey, Session{UserID: userID, Email: email})
		c.Next()
	}
}

// CurrentSession returns the session placed by AuthMiddleware. The zero
// session (uuid.Nil user) means the route was not protected.
func CurrentSession(c *gin.Context) Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{}
}
