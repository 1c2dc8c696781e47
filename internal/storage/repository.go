package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jess-125/memoraid/internal/model"
	"github.com/Jess-125/memoraid/internal/query"
)

// DefaultSnooze is the advance applied when a caller does not pick a
// delta.
const DefaultSnooze = 5 * time.Minute

// Repository is the only mutation surface over the Store. Every mutating
// call is a full load, modify, save; mu serializes that whole span, so a
// second writer waits instead of overwriting the first writer's
// collection with a stale copy.
//
// Reads go straight to the store: SaveAll replaces the file atomically,
// so a concurrent load sees either the old or the new collection, never
// a torn one.
type Repository struct {
	mu    sync.Mutex
	store *Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewRepository(store *Store, log zerolog.Logger) *Repository {
	return &Repository{store: store, log: log, now: time.Now}
}

// AddTask validates, persists and returns a new Pending, unnotified
// task. Any *ValidationError is returned before the store is touched.
// Empty reminder text is allowed and yields an undated task.
func (r *Repository) AddTask(ctx context.Context, user, title, description, reminderText string) (model.Task, error) {
	user = strings.TrimSpace(user)
	title = strings.TrimSpace(title)
	if user == "" {
		return model.Task{}, &ValidationError{Field: "user", Reason: "required"}
	}
	if title == "" {
		return model.Task{}, &ValidationError{Field: "title", Reason: "required"}
	}
	when, err := model.ParseReminderInput(reminderText, r.now())
	if err != nil {
		return model.Task{}, &ValidationError{Field: "reminder_time", Reason: err.Error()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:          uuid.NewString(),
		User:        user,
		Title:       title,
		Description: strings.TrimSpace(description),
		ReminderAt:  when,
		Status:      model.StatusPending,
	}
	if err := r.store.SaveAll(append(tasks, task)); err != nil {
		return model.Task{}, err
	}
	r.log.Debug().Str("id", task.ID).Str("user", task.User).Msg("task added")
	return task, nil
}

// DeleteTask hard-deletes by id. ErrNotFound when nothing matched; the
// file is rewritten only when a removal actually happened.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return ErrNotFound
	}
	if err := r.store.SaveAll(kept); err != nil {
		return err
	}
	r.log.Debug().Str("id", id).Msg("task deleted")
	return nil
}

// UpdateStatus sets any of the four status values. There is no enforced
// state machine, and the notified flag is left alone.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, &ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}
	return r.updateTask(id, func(t *model.Task) error {
		t.Status = status
		return nil
	})
}

// Snooze advances the reminder time by delta (DefaultSnooze when delta
// is not positive) and clears the notified flag so the task becomes due
// again at the new time. Undated tasks cannot be snoozed.
func (r *Repository) Snooze(ctx context.Context, id string, delta time.Duration) (model.Task, error) {
	if delta <= 0 {
		delta = DefaultSnooze
	}
	return r.updateTask(id, func(t *model.Task) error {
		if !t.HasReminder() {
			return ErrNoReminderTime
		}
		t.ReminderAt = t.ReminderAt.Add(delta)
		t.ReminderRaw = ""
		t.Notified = false
		return nil
	})
}

// Acknowledge marks the task as having fired, retiring it from the due
// set until a later Snooze resets the flag.
func (r *Repository) Acknowledge(ctx context.Context, id string) (model.Task, error) {
	return r.updateTask(id, func(t *model.Task) error {
		t.Notified = true
		return nil
	})
}

// ListAll is the read-only pass-through to the store.
func (r *Repository) ListAll(ctx context.Context) ([]model.Task, error) {
	return r.store.LoadAll()
}

// ListTasks is the read surface handed to the UI: one user's tasks,
// optionally narrowed by a case-insensitive title substring, upcoming
// reminders first.
func (r *Repository) ListTasks(ctx context.Context, user, titleFilter string) ([]model.Task, error) {
	tasks, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	tasks = query.FilterByUser(tasks, user)
	tasks = query.FilterByTitleSubstring(tasks, titleFilter)
	return query.SortUpcomingFirst(tasks), nil
}

func (r *Repository) updateTask(id string, mutate func(*model.Task) error) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		return model.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if err := mutate(&tasks[i]); err != nil {
			return model.Task{}, err
		}
		if err := r.store.SaveAll(tasks); err != nil {
			return model.Task{}, err
		}
		r.log.Debug().Str("id", id).Str("status", string(tasks[i].Status)).Bool("notified", tasks[i].Notified).Msg("task updated")
		return tasks[i], nil
	}
	return model.Task{}, ErrNotFound
}
