package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jess-125/memoraid/internal/model"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "tasks.csv"))
	return NewRepository(store, zerolog.Nop())
}

func TestAddTaskAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, "Grace", "Take medication", "", "2025-01-01 09:00")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected generated id")
	}
	if task.Status != model.StatusPending || task.Notified {
		t.Fatalf("new task must be Pending and unnotified: %+v", task)
	}

	tasks, err := repo.ListTasks(ctx, "Grace", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("expected exactly the added task, got %+v", tasks)
	}
}

func TestAddTaskValidation(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		user  string
		title string
		when  string
		field string
	}{
		{"blank user", "  ", "Take medication", "09:00", "user"},
		{"blank title", "Grace", "", "09:00", "title"},
		{"bad time", "Grace", "Take medication", "not-a-time", "reminder_time"},
	}
	for _, tc := range cases {
		_, err := repo.AddTask(ctx, tc.user, tc.title, "", tc.when)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%s: expected *ValidationError, got %v", tc.name, err)
		}
		if validation.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, validation.Field)
		}
	}

	// nothing may have been written by the rejected calls
	tasks, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("validation failures must not persist anything, got %d tasks", len(tasks))
	}
}

func TestAddTaskEmptyReminderMeansUndated(t *testing.T) {
	repo := setupRepo(t)
	task, err := repo.AddTask(context.Background(), "Grace", "Sort photos", "", "")
	if err != nil {
		t.Fatalf("add undated task: %v", err)
	}
	if task.HasReminder() {
		t.Fatalf("expected undated task, got %v", task.ReminderAt)
	}
}

func TestAddTaskGeneratesUniqueIDsConcurrently(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddTask(ctx, "Grace", "Drink water", "", "10:00"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent add: %v", err)
	}

	tasks, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != workers {
		t.Fatalf("expected %d tasks, lost writes left %d", workers, len(tasks))
	}
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestDeleteTask(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, "Grace", "Water plants", "", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	tasks, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection after delete, got %d", len(tasks))
	}
}

func TestUpdateStatusLeavesNotifiedAlone(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, "Grace", "Take medication", "", "09:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.Acknowledge(ctx, task.ID); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, task.ID, model.StatusDeferred)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.StatusDeferred {
		t.Fatalf("expected Deferred, got %q", updated.Status)
	}
	if !updated.Notified {
		t.Fatalf("UpdateStatus must not touch the notified flag")
	}

	if _, err := repo.UpdateStatus(ctx, "missing", model.StatusCompleted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var validation *ValidationError
	if _, err := repo.UpdateStatus(ctx, task.ID, "Done"); !errors.As(err, &validation) {
		t.Fatalf("expected *ValidationError for unknown status, got %v", err)
	}
}

func TestSnooze(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, "Grace", "Take medication", "", "2025-01-01 09:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.Acknowledge(ctx, task.ID); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	snoozed, err := repo.Snooze(ctx, task.ID, 5*time.Minute)
	if err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if got, want := snoozed.ReminderAt, task.ReminderAt.Add(5*time.Minute); !got.Equal(want) {
		t.Fatalf("expected reminder at %v, got %v", want, got)
	}
	if snoozed.Notified {
		t.Fatalf("snooze must clear the notified flag")
	}
}

func TestSnoozeDefaultsDelta(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, "Grace", "Take medication", "", "2025-01-01 09:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	snoozed, err := repo.Snooze(ctx, task.ID, 0)
	if err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if got, want := snoozed.ReminderAt, task.ReminderAt.Add(DefaultSnooze); !got.Equal(want) {
		t.Fatalf("expected default snooze %v, got %v", want, got)
	}
}

func TestSnoozeUndatedTask(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task, err := repo.AddTask(ctx, "Grace", "Sort photos", "", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.Snooze(ctx, task.ID, time.Minute); !errors.Is(err, ErrNoReminderTime) {
		t.Fatalf("expected ErrNoReminderTime, got %v", err)
	}
	if _, err := repo.Snooze(ctx, "missing", time.Minute); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTasksFiltersAndSorts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.AddTask(ctx, "Grace", "Evening walk", "", "2025-01-01 18:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.AddTask(ctx, "Grace", "Take medication", "", "2025-01-01 09:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.AddTask(ctx, "Samuel", "Check on Grace", "", "2025-01-01 10:00"); err != nil {
		t.Fatalf("add: %v", err)
	}

	tasks, err := repo.ListTasks(ctx, "Grace", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 Grace tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Take medication" || tasks[1].Title != "Evening walk" {
		t.Fatalf("expected upcoming-first order, got %q then %q", tasks[0].Title, tasks[1].Title)
	}

	tasks, err = repo.ListTasks(ctx, "Grace", "MEDICATION")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Take medication" {
		t.Fatalf("case-insensitive title filter failed: %+v", tasks)
	}
}
