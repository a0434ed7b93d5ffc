package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
	"personal-organizer/internal/service"
)

// loadOwnedTask fetches the task and enforces the caller-side ownership
// contract: the service does not check task.UserID, the handler must.
func (s *Server) loadOwnedTask(c *gin.Context) (*model.Task, bool) {
	id, err := idParam(c)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	task, err := s.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if task.UserID != currentUser(c).ID {
		writeError(c, errs.Authorizationf("task belongs to another user"))
		return nil, false
	}
	return task, true
}

func (s *Server) handleListTasks(c *gin.Context) {
	filter := service.TaskFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(c, errs.Validationf("invalid limit %q", raw))
			return
		}
		filter.Limit = limit
	}

	tasks, err := s.tasks.ListForUser(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	dicts := make([]map[string]any, 0, len(tasks))
	for i := range tasks {
		dicts = append(dicts, tasks[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"tasks": dicts})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	input := service.TaskInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Priority:    c.PostForm("priority"),
		Status:      c.PostForm("status"),
	}
	if raw := c.PostForm("due_date"); raw != "" {
		due, err := parseDate(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		input.DueDate = due
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task.ToDict())
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, ok := s.loadOwnedTask(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task.ToDict())
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	task, ok := s.loadOwnedTask(c)
	if !ok {
		return
	}

	var update service.TaskUpdate
	if v, set := c.GetPostForm("title"); set {
		update.Title = &v
	}
	if v, set := c.GetPostForm("description"); set {
		update.Description = &v
	}
	if v, set := c.GetPostForm("category"); set {
		update.Category = &v
	}
	if v, set := c.GetPostForm("priority"); set {
		update.Priority = &v
	}
	if v, set := c.GetPostForm("status"); set {
		update.Status = &v
	}
	if v, set := c.GetPostForm("due_date"); set {
		if v == "" {
			update.ClearDueDate = true
		} else {
			due, err := parseDate(v)
			if err != nil {
				writeError(c, err)
				return
			}
			update.DueDate = due
		}
	}

	task, err := s.tasks.Update(c.Request.Context(), task, update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task.ToDict())
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	task, ok := s.loadOwnedTask(c)
	if !ok {
		return
	}
	task, err := s.tasks.Complete(c.Request.Context(), task)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task.ToDict())
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	task, ok := s.loadOwnedTask(c)
	if !ok {
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), task); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
