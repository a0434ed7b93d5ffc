package model

import (
	"time"

	"personal-organizer/internal/errs"
)

// TravelDiary is a trip with an ordered set of planned activities.
// Activities are deleted together with their diary.
type TravelDiary struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"size:100;not null"`
	Location    string `gorm:"size:100;not null"`
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Activities []Activity `gorm:"foreignKey:DiaryID;constraint:OnDelete:CASCADE"`
}

// NewTravelDiary builds a validated diary. Both dates are normalized to UTC
// before the ordering check; either may be absent.
func NewTravelDiary(user *User, title, location, description string, startDate, endDate *time.Time) (*TravelDiary, error) {
	if title == "" {
		return nil, errs.Validationf("title is required")
	}
	if location == "" {
		return nil, errs.Validationf("location is required")
	}
	if user == nil || user.ID == 0 {
		return nil, errs.Validationf("diary owner is required")
	}

	d := &TravelDiary{
		UserID:      user.ID,
		Title:       title,
		Location:    location,
		Description: description,
		StartDate:   AsUTCPtr(startDate),
		EndDate:     AsUTCPtr(endDate),
	}
	if err := d.ValidateDateOrder(); err != nil {
		return nil, err
	}

	now := Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	return d, nil
}

// ValidateDateOrder rejects an end date that precedes the start date.
// Absent bounds impose no constraint.
func (d *TravelDiary) ValidateDateOrder() error {
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.UTC().Before(d.StartDate.UTC()) {
		return errs.Validationf("end date cannot be before start date")
	}
	return nil
}

// CheckActivityDate verifies that a planned date lies inside the diary's
// bounds. The range is inclusive; when only the start is set, only the lower
// bound applies.
func (d *TravelDiary) CheckActivityDate(planned time.Time) error {
	planned = planned.UTC()
	if d.StartDate != nil && planned.Before(d.StartDate.UTC()) {
		return errs.Validationf("activity date must be within diary date range")
	}
	if d.EndDate != nil && planned.After(d.EndDate.UTC()) {
		return errs.Validationf("activity date must be within diary date range")
	}
	return nil
}

// ToDict returns the canonical serialization with nested activities.
func (d *TravelDiary) ToDict() map[string]any {
	activities := make([]map[string]any, 0, len(d.Activities))
	for i := range d.Activities {
		activities = append(activities, d.Activities[i].ToDict())
	}
	return map[string]any{
		"id":          d.ID,
		"title":       d.Title,
		"location":    d.Location,
		"description": d.Description,
		"start_date":  isoPtr(d.StartDate),
		"end_date":    isoPtr(d.EndDate),
		"created_at":  iso(d.CreatedAt),
		"updated_at":  iso(d.UpdatedAt),
		"user_id":     d.UserID,
		"activities":  activities,
	}
}
