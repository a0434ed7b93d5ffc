// Package service orchestrates entity creation, lookup, update and deletion.
// Services validate input, raise typed errors at the point of detection and
// perform exactly one commit per operation. Ownership checks belong to the
// callers (the HTTP handlers), not to the services.
package service

import (
	"context"
	"time"

	"personal-organizer/internal/model"
)

// The store interfaces below are implemented by the GORM repositories in
// internal/repository; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, user *model.User) error
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListForUser(ctx context.Context, userID uint, status, category string, limit int) ([]model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
}

type DiaryStore interface {
	Create(ctx context.Context, diary *model.TravelDiary) error
	FindByID(ctx context.Context, id uint) (*model.TravelDiary, error)
	ListForUser(ctx context.Context, userID uint) ([]model.TravelDiary, error)
	Save(ctx context.Context, diary *model.TravelDiary) error
	Delete(ctx context.Context, diary *model.TravelDiary) error
}

type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
	FindByID(ctx context.Context, id uint) (*model.Activity, error)
	ListForDiary(ctx context.Context, diaryID uint) ([]model.Activity, error)
	Save(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, activity *model.Activity) error
}

// optional returns the dereferenced value when set, keeping partial-update
// application terse.
func optional(field *string, current string) string {
	if field != nil {
		return *field
	}
	return current
}

// normalizeOptional UTC-normalizes a supplied optional timestamp.
func normalizeOptional(field *time.Time) *time.Time {
	return model.AsUTCPtr(field)
}
