package model

import (
	"regexp"
	"time"

	"personal-organizer/internal/errs"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// User owns tasks and travel diaries. Only the bcrypt hash of the password
// exists on the struct; there is no plaintext field to read back, and the
// hash is excluded from serialization.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex"`
	Email        string `gorm:"size:120;uniqueIndex"`
	PasswordHash string `gorm:"size:128"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Tasks         []Task        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TravelDiaries []TravelDiary `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// NewUser validates the identity fields. The password hash is set separately
// by the auth package so the model never holds a plaintext credential.
func NewUser(username, email string) (*User, error) {
	if username == "" {
		return nil, errs.Validationf("username is required")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	now := Now()
	return &User{
		Username:  username,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateEmail checks the address against the local@domain.tld pattern.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errs.Validationf("invalid email format")
	}
	return nil
}

// Deactivate disables the account; authentication rejects it afterwards.
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = Now()
}

// Reactivate re-enables a previously deactivated account.
func (u *User) Reactivate() {
	u.IsActive = true
	u.UpdatedAt = Now()
}

// ToDict returns the canonical serialization. The password hash is omitted.
func (u *User) ToDict() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"is_active":  u.IsActive,
		"created_at": iso(u.CreatedAt),
		"updated_at": iso(u.UpdatedAt),
	}
}
