package model

import (
	"strings"
	"time"

	"personal-organizer/internal/errs"
)

// Task category, priority and status enums. Status includes in_progress;
// values outside these sets are rejected at construction and update.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	CategoryGeneral = "general"
)

var (
	ValidCategories = []string{"personal", "work", "shopping", "health", CategoryGeneral, "study"}
	ValidPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
	ValidStatuses   = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ValidateCategory rejects values outside the category enum.
func ValidateCategory(category string) error {
	if !contains(ValidCategories, category) {
		return errs.Validationf("invalid category %q, must be one of: %s", category, strings.Join(ValidCategories, ", "))
	}
	return nil
}

// ValidatePriority rejects values outside the priority enum.
func ValidatePriority(priority string) error {
	if !contains(ValidPriorities, priority) {
		return errs.Validationf("invalid priority %q, must be one of: %s", priority, strings.Join(ValidPriorities, ", "))
	}
	return nil
}

// ValidateStatus rejects values outside the status enum.
func ValidateStatus(status string) error {
	if !contains(ValidStatuses, status) {
		return errs.Validationf("invalid status %q, must be one of: %s", status, strings.Join(ValidStatuses, ", "))
	}
	return nil
}

// Task represents a single to-do item. The owner is required.
type Task struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"index;not null"`
	Title           string `gorm:"size:100;not null"`
	Description     string
	DueDate         *time.Time
	Category        string `gorm:"size:20;default:general"`
	Priority        string `gorm:"size:10;default:medium"`
	Status          string `gorm:"size:20;default:pending"`
	CompletionNotes string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTask builds a validated task owned by user. Due dates are normalized
// to UTC; naive handling of inputs happens at the parsing boundary.
func NewTask(user *User, title, description, category, priority, status string, dueDate *time.Time) (*Task, error) {
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	if user == nil || user.ID == 0 {
		return nil, errs.Validationf("task owner is required")
	}
	if category == "" {
		category = CategoryGeneral
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if status == "" {
		status = StatusPending
	}
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}
	if err := ValidateStatus(status); err != nil {
		return nil, err
	}

	now := Now()
	return &Task{
		UserID:      user.ID,
		Title:       title,
		Description: description,
		DueDate:     AsUTCPtr(dueDate),
		Category:    category,
		Priority:    priority,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkCompleted transitions the task to completed and stamps the completion
// time. Calling it again keeps the original completed_at.
func (t *Task) MarkCompleted(notes string) {
	if t.Status != StatusCompleted {
		t.Status = StatusCompleted
		now := Now()
		t.CompletedAt = &now
	}
	if notes != "" {
		t.CompletionNotes = notes
	}
	t.UpdatedAt = Now()
}

// IsOverdue reports whether an open task's due date has passed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	return now.UTC().After(t.DueDate.UTC())
}

// ToDict returns the canonical serialization with ISO-8601 UTC timestamps.
func (t *Task) ToDict() map[string]any {
	return map[string]any{
		"id":               t.ID,
		"title":            t.Title,
		"description":      t.Description,
		"due_date":         isoPtr(t.DueDate),
		"category":         t.Category,
		"priority":         t.Priority,
		"status":           t.Status,
		"completion_notes": t.CompletionNotes,
		"created_at":       iso(t.CreatedAt),
		"updated_at":       iso(t.UpdatedAt),
		"completed_at":     isoPtr(t.CompletedAt),
		"user_id":          t.UserID,
	}
}
