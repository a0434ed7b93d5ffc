package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// DiaryRepository handles CRUD for travel diaries.
type DiaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

func (r *DiaryRepository) Create(ctx context.Context, diary *model.TravelDiary) error {
	if err := r.db.WithContext(ctx).Create(diary).Error; err != nil {
		return fmt.Errorf("create diary: %w", err)
	}
	return nil
}

func (r *DiaryRepository) FindByID(ctx context.Context, id uint) (*model.TravelDiary, error) {
	var diary model.TravelDiary
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("planned_date NULLS LAST, created_at ASC")
		}).
		First(&diary, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("travel diary %d not found", id)
		}
		return nil, fmt.Errorf("find diary: %w", err)
	}
	return &diary, nil
}

func (r *DiaryRepository) ListForUser(ctx context.Context, userID uint) ([]model.TravelDiary, error) {
	var diaries []model.TravelDiary
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("start_date NULLS LAST, created_at ASC").
		Find(&diaries).Error
	if err != nil {
		return nil, fmt.Errorf("list diaries: %w", err)
	}
	return diaries, nil
}

func (r *DiaryRepository) Save(ctx context.Context, diary *model.TravelDiary) error {
	if err := r.db.WithContext(ctx).Omit("Activities").Save(diary).Error; err != nil {
		return fmt.Errorf("save diary: %w", err)
	}
	return nil
}

// Delete removes the diary and its activities in one transaction.
func (r *DiaryRepository) Delete(ctx context.Context, diary *model.TravelDiary) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diary_id = ?", diary.ID).Delete(&model.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TravelDiary{}, diary.ID).Error
	})
	if err != nil {
		return fmt.Errorf("delete diary: %w", err)
	}
	return nil
}
