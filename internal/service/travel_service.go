package service

import (
	"context"
	"time"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// DiaryInput represents data required to create a travel diary.
type DiaryInput struct {
	Title       string
	Location    string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// DiaryUpdate holds the optional fields of a partial diary update.
type DiaryUpdate struct {
	Title        *string
	Location     *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
}

// ActivityInput represents data required to add an activity to a diary.
type ActivityInput struct {
	Title       string
	Description string
	Location    string
	Notes       string
	PlannedDate *time.Time
	Cost        *float64
}

// ActivityUpdate holds the optional fields of a partial activity update.
type ActivityUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Notes       *string
	PlannedDate *time.Time
	Cost        *float64
}

// TravelService wraps travel diary and activity business logic.
type TravelService struct {
	diaries    DiaryStore
	activities ActivityStore
}

func NewTravelService(diaries DiaryStore, activities ActivityStore) *TravelService {
	return &TravelService{diaries: diaries, activities: activities}
}

// CreateDiary normalizes both dates to UTC and rejects an end date that
// precedes the start date. The start date is required.
func (s *TravelService) CreateDiary(ctx context.Context, user *model.User, input DiaryInput) (*model.TravelDiary, error) {
	if input.StartDate == nil {
		return nil, errs.Validationf("start date is required")
	}

	diary, err := model.NewTravelDiary(user, input.Title, input.Location,
		input.Description, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.diaries.Create(ctx, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

func (s *TravelService) GetDiaryByID(ctx context.Context, id uint) (*model.TravelDiary, error) {
	return s.diaries.FindByID(ctx, id)
}

// ListDiariesForUser returns the user's diaries ordered by ascending start
// date.
func (s *TravelService) ListDiariesForUser(ctx context.Context, user *model.User) ([]model.TravelDiary, error) {
	return s.diaries.ListForUser(ctx, user.ID)
}

// AddActivity validates the planned date against the diary bounds (inclusive
// range; the lower bound alone applies when only the start date is set) and
// persists the activity.
func (s *TravelService) AddActivity(ctx context.Context, diary *model.TravelDiary, input ActivityInput) (*model.Activity, error) {
	if input.PlannedDate == nil {
		return nil, errs.Validationf("planned date is required")
	}

	activity, err := model.NewActivity(diary, input.Title, input.Description,
		input.Location, input.Notes, input.PlannedDate, input.Cost)
	if err != nil {
		return nil, err
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListActivities returns the diary's activities ordered by ascending planned
// date.
func (s *TravelService) ListActivities(ctx context.Context, diary *model.TravelDiary) ([]model.Activity, error) {
	return s.activities.ListForDiary(ctx, diary.ID)
}

func (s *TravelService) GetActivityByID(ctx context.Context, id uint) (*model.Activity, error) {
	return s.activities.FindByID(ctx, id)
}

// CompleteActivity sets the completion flag and timestamp. The transition is
// one-way and idempotent.
func (s *TravelService) CompleteActivity(ctx context.Context, activity *model.Activity, notes string) (*model.Activity, error) {
	activity.MarkCompleted(notes)
	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// UpdateActivity applies only the supplied fields. A planned-date change is
// re-checked against the parent diary's bounds; nothing mutates on failure.
func (s *TravelService) UpdateActivity(ctx context.Context, activity *model.Activity, update ActivityUpdate) (*model.Activity, error) {
	updated := *activity
	updated.Title = optional(update.Title, activity.Title)
	updated.Description = optional(update.Description, activity.Description)
	updated.Location = optional(update.Location, activity.Location)
	updated.Notes = optional(update.Notes, activity.Notes)
	if update.Cost != nil {
		updated.Cost = update.Cost
	}

	if update.PlannedDate != nil {
		diary, err := s.diaries.FindByID(ctx, activity.DiaryID)
		if err != nil {
			return nil, err
		}
		planned := normalizeOptional(update.PlannedDate)
		if err := diary.CheckActivityDate(*planned); err != nil {
			return nil, err
		}
		updated.PlannedDate = planned
	}

	updated.UpdatedAt = model.Now()
	if err := s.activities.Save(ctx, &updated); err != nil {
		return nil, err
	}
	*activity = updated
	return activity, nil
}

// DeleteActivity removes a single activity from its diary.
func (s *TravelService) DeleteActivity(ctx context.Context, activity *model.Activity) error {
	return s.activities.Delete(ctx, activity)
}

// UpdateDiary applies only the supplied fields, then re-validates the
// start/end ordering. A violation rejects the whole update.
func (s *TravelService) UpdateDiary(ctx context.Context, diary *model.TravelDiary, update DiaryUpdate) (*model.TravelDiary, error) {
	updated := *diary
	updated.Title = optional(update.Title, diary.Title)
	updated.Location = optional(update.Location, diary.Location)
	updated.Description = optional(update.Description, diary.Description)

	if update.StartDate != nil {
		updated.StartDate = normalizeOptional(update.StartDate)
	}
	if update.ClearEndDate {
		updated.EndDate = nil
	} else if update.EndDate != nil {
		updated.EndDate = normalizeOptional(update.EndDate)
	}

	if err := updated.ValidateDateOrder(); err != nil {
		return nil, err
	}

	updated.UpdatedAt = model.Now()
	if err := s.diaries.Save(ctx, &updated); err != nil {
		return nil, err
	}
	*diary = updated
	return diary, nil
}

// DeleteDiary removes the diary and, transactionally, all its activities.
func (s *TravelService) DeleteDiary(ctx context.Context, diary *model.TravelDiary) error {
	return s.diaries.Delete(ctx, diary)
}
