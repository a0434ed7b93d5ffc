package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
	"personal-organizer/internal/service"
)

func (s *Server) handleRegister(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := s.users.Create(c.Request.Context(), username, email, password)
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("user registered", "username", user.Username)
	c.JSON(http.StatusCreated, user.ToDict())
}

func (s *Server) handleLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		writeError(c, errs.Validationf("email and password are required"))
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		// Credential failures are 401 here, not the generic 403 mapping.
		if errors.Is(err, errs.ErrAuthorization) {
			slog.Warn("login rejected", "email", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": errs.Reason(err)})
			return
		}
		writeError(c, err)
		return
	}

	session, err := s.sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	maxAge := int(s.sessions.TTL().Seconds())
	c.SetCookie(SessionCookie, session.Token, maxAge, "/", "", false, true)
	slog.Info("user logged in", "username", user.Username)
	c.JSON(http.StatusOK, user.ToDict())
}

func (s *Server) handleLogout(c *gin.Context) {
	token, _ := c.Cookie(SessionCookie)
	if err := s.sessions.Revoke(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).ToDict())
}

// handleDashboard returns up to five pending tasks and five diaries.
func (s *Server) handleDashboard(c *gin.Context) {
	user := currentUser(c)

	tasks, err := s.tasks.ListForUser(c.Request.Context(), user,
		service.TaskFilter{Status: model.StatusPending, Limit: 5})
	if err != nil {
		writeError(c, err)
		return
	}

	diaries, err := s.travel.ListDiariesForUser(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(diaries) > 5 {
		diaries = diaries[:5]
	}

	taskDicts := make([]map[string]any, 0, len(tasks))
	for i := range tasks {
		taskDicts = append(taskDicts, tasks[i].ToDict())
	}
	diaryDicts := make([]map[string]any, 0, len(diaries))
	for i := range diaries {
		diaryDicts = append(diaryDicts, diaries[i].ToDict())
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_tasks":    taskDicts,
		"upcoming_travels": diaryDicts,
	})
}
