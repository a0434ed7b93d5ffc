package service

import (
	"context"
	"errors"
	"fmt"

	"personal-organizer/internal/auth"
	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// UserService wraps identity and credential management.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Create registers a new user with a hashed password. Duplicate username or
// email fails with a conflict; the store's unique indexes catch the race
// between the point lookups and the insert.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*model.User, error) {
	user, err := model.NewUser(username, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, errs.Conflictf("username already exists")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errs.Conflictf("email already exists")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves the email and verifies the password. Inactive
// accounts are rejected even with correct credentials. Failures do not
// reveal whether the email exists.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Authorizationf("invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.Authorizationf("account is inactive")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errs.Authorizationf("invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// UserUpdate holds the optional fields of a partial user update.
type UserUpdate struct {
	Email    *string
	Password *string
}

// Update applies only the supplied fields. An email change re-checks
// uniqueness against other users; no field mutates when the update fails.
func (s *UserService) Update(ctx context.Context, user *model.User, update UserUpdate) (*model.User, error) {
	updated := *user

	if update.Email != nil {
		if err := model.ValidateEmail(*update.Email); err != nil {
			return nil, err
		}
		existing, err := s.users.FindByEmail(ctx, *update.Email)
		if err == nil && existing.ID != user.ID {
			return nil, errs.Conflictf("email already exists")
		} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		updated.Email = *update.Email
	}

	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	updated.UpdatedAt = model.Now()
	if err := s.users.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	*user = updated
	return user, nil
}

// Deactivate disables the account; login is rejected afterwards.
func (s *UserService) Deactivate(ctx context.Context, user *model.User) error {
	user.Deactivate()
	return s.users.Save(ctx, user)
}

// Reactivate re-enables a deactivated account.
func (s *UserService) Reactivate(ctx context.Context, user *model.User) error {
	user.Reactivate()
	return s.users.Save(ctx, user)
}

// Delete removes the user and, transactionally, all owned tasks and diaries.
func (s *UserService) Delete(ctx context.Context, user *model.User) error {
	return s.users.Delete(ctx, user)
}
