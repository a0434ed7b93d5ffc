package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-organizer/internal/model"
)

const userKey = "organizer_user"

// requireSession resolves the session cookie to an active user and aborts
// with 401 otherwise. Deactivated accounts are rejected even with a live
// session.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		userID, err := s.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the principal stored by requireSession.
func currentUser(c *gin.Context) *model.User {
	user, _ := c.MustGet(userKey).(*model.User)
	return user
}
