package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// ActivityRepository handles CRUD for diary activities.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("activity %d not found", id)
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return &activity, nil
}

func (r *ActivityRepository) ListForDiary(ctx context.Context, diaryID uint) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).Where("diary_id = ?", diaryID).
		Order("planned_date NULLS LAST, created_at ASC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (r *ActivityRepository) Save(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return fmt.Errorf("save activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Delete(&model.Activity{}, activity.ID).Error; err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
