package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// newTestDB opens a uniquely named shared in-memory database so parallel
// tests do not see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *model.User {
	t.Helper()
	user, err := model.NewUser(username, email)
	require.NoError(t, err)
	user.PasswordHash = "$2a$10$hash"
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestUserUniqueIndexBecomesConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", "alice@example.com")

	dup, err := model.NewUser("alice", "other@example.com")
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, errs.ErrConflict))

	dup, err = model.NewUser("bob", "alice@example.com")
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, errs.ErrConflict))
}

func TestUserFindNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 99)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = repo.FindByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestUserDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")

	task, err := model.NewTask(user, "errand", "", "", "", "", nil)
	require.NoError(t, err)
	require.NoError(t, NewTaskRepository(db).Create(ctx, task))

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	diary, err := model.NewTravelDiary(user, "Norway", "Oslo", "", &start, nil)
	require.NoError(t, err)
	require.NoError(t, NewDiaryRepository(db).Create(ctx, diary))

	planned := start.Add(48 * time.Hour)
	activity, err := model.NewActivity(diary, "Museum", "", "", "", &planned, nil)
	require.NoError(t, err)
	require.NoError(t, NewActivityRepository(db).Create(ctx, activity))

	session := &model.Session{Token: "tok", UserID: user.ID, ExpiresAt: model.Now().Add(time.Hour), CreatedAt: model.Now()}
	require.NoError(t, NewSessionRepository(db).Create(ctx, session))

	require.NoError(t, NewUserRepository(db).Delete(ctx, user))

	var count int64
	for _, target := range []any{&model.Task{}, &model.TravelDiary{}, &model.Activity{}, &model.Session{}, &model.User{}} {
		require.NoError(t, db.Model(target).Count(&count).Error)
		assert.Zero(t, count, "%T rows should be gone", target)
	}
}

func TestTaskListOrderingNullsLast(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")

	mk := func(title string, due *time.Time) {
		task, err := model.NewTask(user, title, "", "", "", "", due)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, task))
	}
	late := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	soon := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mk("later", &late)
	mk("undated", nil)
	mk("soon", &soon)

	tasks, err := repo.ListForUser(ctx, user.ID, "", "", 0)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "soon", tasks[0].Title)
	assert.Equal(t, "later", tasks[1].Title)
	assert.Equal(t, "undated", tasks[2].Title)

	capped, err := repo.ListForUser(ctx, user.ID, "", "", 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)

	pending, err := repo.ListForUser(ctx, user.ID, model.StatusPending, "", 0)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestDiaryDeleteCascadesActivities(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(9 * 24 * time.Hour)
	diary, err := model.NewTravelDiary(user, "Norway", "Oslo", "", &start, &end)
	require.NoError(t, err)
	diaryRepo := NewDiaryRepository(db)
	require.NoError(t, diaryRepo.Create(ctx, diary))

	activityRepo := NewActivityRepository(db)
	planned := start.Add(24 * time.Hour)
	activity, err := model.NewActivity(diary, "Museum", "", "", "", &planned, nil)
	require.NoError(t, err)
	require.NoError(t, activityRepo.Create(ctx, activity))

	require.NoError(t, diaryRepo.Delete(ctx, diary))

	var count int64
	require.NoError(t, db.Model(&model.Activity{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDiaryFindByIDPreloadsOrderedActivities(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(9 * 24 * time.Hour)
	diary, err := model.NewTravelDiary(user, "Norway", "Oslo", "", &start, &end)
	require.NoError(t, err)
	require.NoError(t, NewDiaryRepository(db).Create(ctx, diary))

	activityRepo := NewActivityRepository(db)
	for _, day := range []int{7, 2} {
		planned := time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
		activity, err := model.NewActivity(diary, fmt.Sprintf("day-%d", day), "", "", "", &planned, nil)
		require.NoError(t, err)
		require.NoError(t, activityRepo.Create(ctx, activity))
	}

	loaded, err := NewDiaryRepository(db).FindByID(ctx, diary.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Activities, 2)
	assert.Equal(t, "day-2", loaded.Activities[0].Title)
	assert.Equal(t, "day-7", loaded.Activities[1].Title)
}

func TestSessionDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "alice", "alice@example.com")

	now := model.Now()
	require.NoError(t, repo.Create(ctx, &model.Session{Token: "old", UserID: user.ID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &model.Session{Token: "live", UserID: user.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}))

	purged, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.FindByToken(ctx, "old")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	_, err = repo.FindByToken(ctx, "live")
	assert.NoError(t, err)
}
