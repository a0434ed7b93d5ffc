// Package server exposes the organizer over HTTP: gin routing, session
// middleware, form/query parsing and the single place where typed service
// errors become status codes.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"personal-organizer/internal/auth"
	"personal-organizer/internal/errs"
	"personal-organizer/internal/service"
)

// SessionCookie is the name of the auth cookie.
const SessionCookie = "organizer_session"

// Server wires the services into HTTP handlers.
type Server struct {
	users    *service.UserService
	tasks    *service.TaskService
	travel   *service.TravelService
	sessions *auth.Sessions
}

func New(users *service.UserService, tasks *service.TaskService,
	travel *service.TravelService, sessions *auth.Sessions) *Server {
	return &Server{users: users, tasks: tasks, travel: travel, sessions: sessions}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/logout", s.requireSession(), s.handleLogout)
	}

	private := router.Group("/", s.requireSession())
	{
		private.GET("/", s.handleDashboard)
		private.GET("/profile", s.handleProfile)

		private.GET("/tasks", s.handleListTasks)
		private.POST("/tasks", s.handleCreateTask)
		private.GET("/tasks/:id", s.handleGetTask)
		private.POST("/tasks/:id", s.handleUpdateTask)
		private.POST("/tasks/:id/complete", s.handleCompleteTask)
		private.DELETE("/tasks/:id", s.handleDeleteTask)

		private.GET("/travel", s.handleListDiaries)
		private.POST("/travel", s.handleCreateDiary)
		private.GET("/travel/:id", s.handleGetDiary)
		private.POST("/travel/:id", s.handleUpdateDiary)
		private.DELETE("/travel/:id", s.handleDeleteDiary)
		private.POST("/travel/:id/activities", s.handleAddActivity)

		private.GET("/travel/activities/:id", s.handleGetActivity)
		private.POST("/travel/activities/:id", s.handleUpdateActivity)
		private.POST("/travel/activities/:id/complete", s.handleCompleteActivity)
		private.DELETE("/travel/activities/:id", s.handleDeleteActivity)
	}

	return router
}

// writeError translates a service error into a response exactly once.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrAuthorization):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": errs.Reason(err)})
}

func idParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errs.Validationf("invalid id %q", raw)
	}
	return uint(id), nil
}

// parseDate parses a YYYY-MM-DD form value as a UTC instant.
func parseDate(value string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return nil, errs.Validationf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}

// parseDateTime combines the YYYY-MM-DD date and HH:MM time form values used
// by activities into a UTC instant.
func parseDateTime(dateValue, timeValue string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", dateValue+" "+timeValue, time.UTC)
	if err != nil {
		return nil, errs.Validationf("invalid date/time %q %q, expected YYYY-MM-DD and HH:MM", dateValue, timeValue)
	}
	return &t, nil
}
