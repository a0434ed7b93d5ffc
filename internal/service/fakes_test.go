package service

import (
	"context"
	"sort"

	"personal-organizer/internal/errs"
	"personal-organizer/internal/model"
)

// In-memory store fakes. They mirror the GORM repositories' observable
// behavior: typed not-found errors, conflict on unique columns, ascending
// order with NULL dates last.

type fakeUserStore struct {
	users  map[uint]model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return errs.Conflictf("username or email already exists")
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errs.NotFoundf("user %d not found", id)
	}
	return &user, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, errs.NotFoundf("user %q not found", username)
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, errs.NotFoundf("user with email %q not found", email)
}

func (f *fakeUserStore) Save(_ context.Context, user *model.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, user *model.User) error {
	delete(f.users, user.ID)
	return nil
}

type fakeTaskStore struct {
	tasks  map[uint]model.Task
	nextID uint
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uint]model.Task)}
}

func (f *fakeTaskStore) Create(_ context.Context, task *model.Task) error {
	f.nextID++
	task.ID = f.nextID
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, id uint) (*model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, errs.NotFoundf("task %d not found", id)
	}
	return &task, nil
}

func (f *fakeTaskStore) ListForUser(_ context.Context, userID uint, status, category string, limit int) ([]model.Task, error) {
	var tasks []model.Task
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		if status != "" && task.Status != status {
			continue
		}
		if category != "" && task.Category != category {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		switch {
		case tasks[i].DueDate == nil && tasks[j].DueDate == nil:
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		case tasks[i].DueDate == nil:
			return false
		case tasks[j].DueDate == nil:
			return true
		default:
			return tasks[i].DueDate.Before(*tasks[j].DueDate)
		}
	})
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (f *fakeTaskStore) Save(_ context.Context, task *model.Task) error {
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, task *model.Task) error {
	delete(f.tasks, task.ID)
	return nil
}

type fakeDiaryStore struct {
	diaries    map[uint]model.TravelDiary
	activities *fakeActivityStore
	nextID     uint
}

func newFakeDiaryStore(activities *fakeActivityStore) *fakeDiaryStore {
	return &fakeDiaryStore{diaries: make(map[uint]model.TravelDiary), activities: activities}
}

func (f *fakeDiaryStore) Create(_ context.Context, diary *model.TravelDiary) error {
	f.nextID++
	diary.ID = f.nextID
	f.diaries[diary.ID] = *diary
	return nil
}

func (f *fakeDiaryStore) FindByID(_ context.Context, id uint) (*model.TravelDiary, error) {
	diary, ok := f.diaries[id]
	if !ok {
		return nil, errs.NotFoundf("travel diary %d not found", id)
	}
	diary.Activities, _ = f.activities.ListForDiary(context.Background(), id)
	return &diary, nil
}

func (f *fakeDiaryStore) ListForUser(_ context.Context, userID uint) ([]model.TravelDiary, error) {
	var diaries []model.TravelDiary
	for _, diary := range f.diaries {
		if diary.UserID == userID {
			diaries = append(diaries, diary)
		}
	}
	sort.SliceStable(diaries, func(i, j int) bool {
		switch {
		case diaries[i].StartDate == nil && diaries[j].StartDate == nil:
			return diaries[i].CreatedAt.Before(diaries[j].CreatedAt)
		case diaries[i].StartDate == nil:
			return false
		case diaries[j].StartDate == nil:
			return true
		default:
			return diaries[i].StartDate.Before(*diaries[j].StartDate)
		}
	})
	return diaries, nil
}

func (f *fakeDiaryStore) Save(_ context.Context, diary *model.TravelDiary) error {
	stored := *diary
	stored.Activities = nil
	f.diaries[diary.ID] = stored
	return nil
}

// Delete mirrors the repository's transactional cascade over activities.
func (f *fakeDiaryStore) Delete(_ context.Context, diary *model.TravelDiary) error {
	for id, activity := range f.activities.activities {
		if activity.DiaryID == diary.ID {
			delete(f.activities.activities, id)
		}
	}
	delete(f.diaries, diary.ID)
	return nil
}

type fakeActivityStore struct {
	activities map[uint]model.Activity
	nextID     uint
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{activities: make(map[uint]model.Activity)}
}

func (f *fakeActivityStore) Create(_ context.Context, activity *model.Activity) error {
	f.nextID++
	activity.ID = f.nextID
	f.activities[activity.ID] = *activity
	return nil
}

func (f *fakeActivityStore) FindByID(_ context.Context, id uint) (*model.Activity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, errs.NotFoundf("activity %d not found", id)
	}
	return &activity, nil
}

func (f *fakeActivityStore) ListForDiary(_ context.Context, diaryID uint) ([]model.Activity, error) {
	var activities []model.Activity
	for _, activity := range f.activities {
		if activity.DiaryID == diaryID {
			activities = append(activities, activity)
		}
	}
	sort.SliceStable(activities, func(i, j int) bool {
		switch {
		case activities[i].PlannedDate == nil && activities[j].PlannedDate == nil:
			return activities[i].CreatedAt.Before(activities[j].CreatedAt)
		case activities[i].PlannedDate == nil:
			return false
		case activities[j].PlannedDate == nil:
			return true
		default:
			return activities[i].PlannedDate.Before(*activities[j].PlannedDate)
		}
	})
	return activities, nil
}

func (f *fakeActivityStore) Save(_ context.Context, activity *model.Activity) error {
	f.activities[activity.ID] = *activity
	return nil
}

func (f *fakeActivityStore) Delete(_ context.Context, activity *model.Activity) error {
	delete(f.activities, activity.ID)
	return nil
}
