package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("task %d not found", id)
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// ListForUser returns the user's tasks ordered by ascending due date with
// NULL due dates last, optionally filtered and capped.
func (r *TaskRepository) ListForUser(ctx context.Context, userID uint, status, category string, limit int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Order("due_date NULLS LAST, created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, task.ID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
