package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bill-review/internal/domain/entity"
	"github.com/garyjia/bill-review/pkg/utils"
)

// Session headers set by the host in front of this service
const (
	HeaderUserEmail = "X-User-Email"
	HeaderUserType  = "X-User-Type"
)

const sessionKey = "session"

var (
	errNoSession = errors.New("missing user session")
	errNotAdmin  = errors.New("administrator session required")
)

// sessionMiddleware reads the host supplied identity; no authentication happens here
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, entity.Session{
			Type:  c.GetHeader(HeaderUserType),
			Email: c.GetHeader(HeaderUserEmail),
		})
		c.Next()
	}
}

func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checkIdentity(c, currentSession(c)) {
			return
		}
		c.Next()
	}
}

// checkIdentity aborts with 401 when the session carries no usable email
func checkIdentity(c *gin.Context, session entity.Session) bool {
	if session.Email == "" {
		respondError(c, http.StatusUnauthorized, errNoSession, nil)
		c.Abort()
		return false
	}
	if err := utils.ValidateEmail(session.Email); err != nil {
		respondError(c, http.StatusUnauthorized, err, nil)
		c.Abort()
		return false
	}
	return true
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if !checkIdentity(c, session) {
			return
		}
		if !session.IsAdmin() {
			respondError(c, http.StatusForbidden, errNotAdmin, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if session, ok := v.(entity.Session); ok {
			return session
		}
	}
	return entity.Session{}
}
