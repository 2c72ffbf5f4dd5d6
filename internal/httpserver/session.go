package httpserver

import (
	"agrimart/internal/domain"
	"agrimart/internal/service/session"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionIDKey = "agrimart.sessionID"

// cookieStorage exposes a gin session as session.Storage.
type cookieStorage struct {
	sess sessions.Session
}

func (s cookieStorage) Get(key string) (string, error) {
	v, _ := s.sess.Get(key).(string)
	return v, nil
}

func (s cookieStorage) Set(key, value string) error {
	s.sess.Set(key, value)
	return s.sess.Save()
}

// sessionMiddleware resolves the shopper's session id and stores it on the
// gin context for the handlers.
func sessionMiddleware(provider *session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := provider.GetOrCreate(cookieStorage{sess: sessions.Default(c)})
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) domain.SessionID {
	v, _ := c.Get(sessionIDKey)
	id, _ := v.(domain.SessionID)
	return id
}
