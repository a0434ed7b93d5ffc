package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
	"personal-organizer/internal/service"
)

func (s *Server) loadOwnedDiary(c *gin.Context) (*model.TravelDiary, bool) {
	id, err := idParam(c)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	diary, err := s.travel.GetDiaryByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if diary.UserID != currentUser(c).ID {
		writeError(c, errs.Authorizationf("travel diary belongs to another user"))
		return nil, false
	}
	return diary, true
}

// loadOwnedActivity resolves ownership through the parent diary.
func (s *Server) loadOwnedActivity(c *gin.Context) (*model.Activity, bool) {
	id, err := idParam(c)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	activity, err := s.travel.GetActivityByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	diary, err := s.travel.GetDiaryByID(c.Request.Context(), activity.DiaryID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if diary.UserID != currentUser(c).ID {
		writeError(c, errs.Authorizationf("activity belongs to another user"))
		return nil, false
	}
	return activity, true
}

func (s *Server) handleListDiaries(c *gin.Context) {
	diaries, err := s.travel.ListDiariesForUser(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	dicts := make([]map[string]any, 0, len(diaries))
	for i := range diaries {
		dicts = append(dicts, diaries[i].ToDict())
	}
	c.JSON(http.StatusOK, gin.H{"travel_diaries": dicts})
}

func (s *Server) handleCreateDiary(c *gin.Context) {
	input := service.DiaryInput{
		Title:       c.PostForm("title"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
	}
	if raw := c.PostForm("start_date"); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		input.StartDate = start
	}
	if raw := c.PostForm("end_date"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		input.EndDate = end
	}

	diary, err := s.travel.CreateDiary(c.Request.Context(), currentUser(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, diary.ToDict())
}

func (s *Server) handleGetDiary(c *gin.Context) {
	diary, ok := s.loadOwnedDiary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, diary.ToDict())
}

func (s *Server) handleUpdateDiary(c *gin.Context) {
	diary, ok := s.loadOwnedDiary(c)
	if !ok {
		return
	}

	var update service.DiaryUpdate
	if v, set := c.GetPostForm("title"); set {
		update.Title = &v
	}
	if v, set := c.GetPostForm("location"); set {
		update.Location = &v
	}
	if v, set := c.GetPostForm("description"); set {
		update.Description = &v
	}
	if v, set := c.GetPostForm("start_date"); set && v != "" {
		start, err := parseDate(v)
		if err != nil {
			writeError(c, err)
			return
		}
		update.StartDate = start
	}
	if v, set := c.GetPostForm("end_date"); set {
		if v == "" {
			update.ClearEndDate = true
		} else {
			end, err := parseDate(v)
			if err != nil {
				writeError(c, err)
				return
			}
			update.EndDate = end
		}
	}

	diary, err := s.travel.UpdateDiary(c.Request.Context(), diary, update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, diary.ToDict())
}

func (s *Server) handleDeleteDiary(c *gin.Context) {
	diary, ok := s.loadOwnedDiary(c)
	if !ok {
		return
	}
	if err := s.travel.DeleteDiary(c.Request.Context(), diary); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "travel diary deleted"})
}

func (s *Server) handleAddActivity(c *gin.Context) {
	diary, ok := s.loadOwnedDiary(c)
	if !ok {
		return
	}

	input := service.ActivityInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		Notes:       c.PostForm("notes"),
	}
	planned, err := parseDateTime(c.PostForm("planned_date"), c.PostForm("planned_time"))
	if err != nil {
		writeError(c, err)
		return
	}
	input.PlannedDate = planned

	if raw := c.PostForm("cost"); raw != "" {
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(c, errs.Validationf("invalid cost %q", raw))
			return
		}
		input.Cost = &cost
	}

	activity, err := s.travel.AddActivity(c.Request.Context(), diary, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity.ToDict())
}

func (s *Server) handleGetActivity(c *gin.Context) {
	activity, ok := s.loadOwnedActivity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, activity.ToDict())
}

func (s *Server) handleUpdateActivity(c *gin.Context) {
	activity, ok := s.loadOwnedActivity(c)
	if !ok {
		return
	}

	var update service.ActivityUpdate
	if v, set := c.GetPostForm("title"); set {
		update.Title = &v
	}
	if v, set := c.GetPostForm("description"); set {
		update.Description = &v
	}
	if v, set := c.GetPostForm("location"); set {
		update.Location = &v
	}
	if v, set := c.GetPostForm("notes"); set {
		update.Notes = &v
	}
	if raw := c.PostForm("cost"); raw != "" {
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(c, errs.Validationf("invalid cost %q", raw))
			return
		}
		update.Cost = &cost
	}
	if dateRaw, set := c.GetPostForm("planned_date"); set {
		planned, err := parseDateTime(dateRaw, c.PostForm("planned_time"))
		if err != nil {
			writeError(c, err)
			return
		}
		update.PlannedDate = planned
	}

	activity, err := s.travel.UpdateActivity(c.Request.Context(), activity, update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity.ToDict())
}

func (s *Server) handleCompleteActivity(c *gin.Context) {
	activity, ok := s.loadOwnedActivity(c)
	if !ok {
		return
	}
	activity, err := s.travel.CompleteActivity(c.Request.Context(), activity,
		c.PostForm("completion_notes"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity.ToDict())
}

func (s *Server) handleDeleteActivity(c *gin.Context) {
	activity, ok := s.loadOwnedActivity(c)
	if !ok {
		return
	}
	if err := s.travel.DeleteActivity(c.Request.Context(), activity); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}
