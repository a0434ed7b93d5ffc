package service

import (
	"context"
	"time"

	"personal-organizer/internal/model"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
	DueDate     *time.Time
}

// TaskFilter narrows a task listing. Empty fields mean no filter.
type TaskFilter struct {
	Status   string
	Category string
	Limit    int
}

// TaskUpdate holds the optional fields of a partial task update.
// ClearDueDate removes an existing due date.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Category     *string
	Priority     *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create validates the enums and persists a new task for the user. The
// entity constructor re-checks the title and enum invariants.
func (s *TaskService) Create(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Category != "" {
		if err := model.ValidateCategory(input.Category); err != nil {
			return nil, err
		}
	}
	if input.Status != "" {
		if err := model.ValidateStatus(input.Status); err != nil {
			return nil, err
		}
	}

	task, err := model.NewTask(user, input.Title, input.Description,
		input.Category, input.Priority, input.Status, input.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// ListForUser returns the user's tasks ordered by ascending due date (NULLs
// last), optionally filtered by exact status/category and capped in count.
func (s *TaskService) ListForUser(ctx context.Context, user *model.User, filter TaskFilter) ([]model.Task, error) {
	if filter.Status != "" {
		if err := model.ValidateStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Category != "" {
		if err := model.ValidateCategory(filter.Category); err != nil {
			return nil, err
		}
	}
	return s.tasks.ListForUser(ctx, user.ID, filter.Status, filter.Category, filter.Limit)
}

// Update applies only the supplied fields. Transitioning status to completed
// stamps completed_at; an invalid category or status rejects the update with
// the task unmodified; updated_at always moves forward.
func (s *TaskService) Update(ctx context.Context, task *model.Task, update TaskUpdate) (*model.Task, error) {
	if update.Category != nil {
		if err := model.ValidateCategory(*update.Category); err != nil {
			return nil, err
		}
	}
	if update.Priority != nil {
		if err := model.ValidatePriority(*update.Priority); err != nil {
			return nil, err
		}
	}
	if update.Status != nil {
		if err := model.ValidateStatus(*update.Status); err != nil {
			return nil, err
		}
	}

	updated := *task
	updated.Title = optional(update.Title, task.Title)
	updated.Description = optional(update.Description, task.Description)
	updated.Category = optional(update.Category, task.Category)
	updated.Priority = optional(update.Priority, task.Priority)

	if update.Status != nil {
		updated.Status = *update.Status
		if *update.Status == model.StatusCompleted && task.Status != model.StatusCompleted {
			now := model.Now()
			updated.CompletedAt = &now
		}
	}

	if update.ClearDueDate {
		updated.DueDate = nil
	} else if update.DueDate != nil {
		updated.DueDate = normalizeOptional(update.DueDate)
	}

	updated.UpdatedAt = model.Now()
	if err := s.tasks.Save(ctx, &updated); err != nil {
		return nil, err
	}
	*task = updated
	return task, nil
}

// Complete marks the task completed; calling it twice keeps the original
// completion timestamp.
func (s *TaskService) Complete(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.Status == model.StatusCompleted {
		return task, nil
	}
	status := model.StatusCompleted
	return s.Update(ctx, task, TaskUpdate{Status: &status})
}

// Delete removes the task. Tasks are leaf entities; nothing cascades.
func (s *TaskService) Delete(ctx context.Context, task *model.Task) error {
	return s.tasks.Delete(ctx, task)
}
