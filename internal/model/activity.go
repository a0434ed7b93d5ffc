package model

import (
	"time"

	"personal-organizer/internal/errs"
)

// Activity is a planned item inside a travel diary. Completion is one-way:
// there is no un-complete operation.
type Activity struct {
	ID              uint   `gorm:"primaryKey"`
	DiaryID         uint   `gorm:"index;not null"`
	Title           string `gorm:"size:100;not null"`
	Description     string
	PlannedDate     *time.Time
	Location        string `gorm:"size:100"`
	Cost            *float64
	Notes           string
	IsCompleted     bool `gorm:"default:false"`
	CompletionNotes string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewActivity builds a validated activity. The parent diary is required and
// the planned date, when present, must fall inside the diary's bounds.
func NewActivity(diary *TravelDiary, title, description, location, notes string, plannedDate *time.Time, cost *float64) (*Activity, error) {
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	if diary == nil || diary.ID == 0 {
		return nil, errs.Validationf("diary is required")
	}

	plannedDate = AsUTCPtr(plannedDate)
	if plannedDate != nil {
		if err := diary.CheckActivityDate(*plannedDate); err != nil {
			return nil, err
		}
	}

	now := Now()
	return &Activity{
		DiaryID:     diary.ID,
		Title:       title,
		Description: description,
		PlannedDate: plannedDate,
		Location:    location,
		Cost:        cost,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MarkCompleted sets the completion flag and timestamp. Repeated calls keep
// the original completed_at.
func (a *Activity) MarkCompleted(notes string) {
	if !a.IsCompleted {
		a.IsCompleted = true
		now := Now()
		a.CompletedAt = &now
	}
	if notes != "" {
		a.CompletionNotes = notes
	}
	a.UpdatedAt = Now()
}

// ToDict returns the canonical serialization with ISO-8601 UTC timestamps.
func (a *Activity) ToDict() map[string]any {
	var cost any
	if a.Cost != nil {
		cost = *a.Cost
	}
	return map[string]any{
		"id":               a.ID,
		"title":            a.Title,
		"description":      a.Description,
		"planned_date":     isoPtr(a.PlannedDate),
		"location":         a.Location,
		"cost":             cost,
		"notes":            a.Notes,
		"is_completed":     a.IsCompleted,
		"completion_notes": a.CompletionNotes,
		"created_at":       iso(a.CreatedAt),
		"updated_at":       iso(a.UpdatedAt),
		"completed_at":     isoPtr(a.CompletedAt),
		"diary_id":         a.DiaryID,
	}
}
