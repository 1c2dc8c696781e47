// Package scheduler decides when reminders fire. Detection (CheckDue)
// is separated from retirement (Acknowledge/Snooze): a due reminder may
// be rendered several times before the user reacts, so CheckDue never
// mutates the durable notified flag on its own.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jess-125/memoraid/internal/model"
	"github.com/Jess-125/memoraid/internal/storage"
)

// MatchPolicy selects how "due" compares a task's reminder time to now.
type MatchPolicy string

const (
	// MatchAtOrPastDue fires every pending, unnotified, dated task whose
	// time is at or before now. A poll that lands after the minute still
	// sees the reminder, so nothing is lost to polling jitter. This is
	// the system default.
	MatchAtOrPastDue MatchPolicy = "at_or_past_due"

	// MatchExactMinute mimics the earliest data files: a task is due
	// only while the wall clock's HH:MM equals the reminder's HH:MM.
	// A reminder whose minute passes between polls never fires.
	MatchExactMinute MatchPolicy = "exact_minute"
)

func (p MatchPolicy) IsValid() bool {
	switch p {
	case MatchAtOrPastDue, MatchExactMinute:
		return true
	default:
		return false
	}
}

// DueReminder is one reminder that has become due for a user.
type DueReminder struct {
	TaskID string
	User   string
	Title  string
	DueAt  time.Time
}

// Engine scans the current collection for due reminders and provides
// the transitions that retire them. It also keeps the session-local
// surfaced set: ids already shown this run, so rapid re-polling does
// not re-render a reminder the user has not reacted to yet. The set is
// never persisted; after a restart an unacknowledged reminder is
// legitimately due again.
type Engine struct {
	repo   *storage.Repository
	policy MatchPolicy
	log    zerolog.Logger

	mu       sync.Mutex
	surfaced map[string]struct{}
}

func NewEngine(repo *storage.Repository, policy MatchPolicy, log zerolog.Logger) *Engine {
	if !policy.IsValid() {
		policy = MatchAtOrPastDue
	}
	return &Engine{
		repo:     repo,
		policy:   policy,
		log:      log,
		surfaced: make(map[string]struct{}),
	}
}

func (e *Engine) Policy() MatchPolicy { return e.policy }

// CheckDue returns the user's due reminders at now, ordered by reminder
// time ascending. Read-only: the notified flag is untouched, because
// the caller may snooze instead of acknowledging.
func (e *Engine) CheckDue(ctx context.Context, now time.Time, user string) ([]DueReminder, error) {
	tasks, err := e.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]DueReminder, 0)
	for _, t := range tasks {
		if t.User != user || t.Status != model.StatusPending || t.Notified || !t.HasReminder() {
			continue
		}
		if !e.matches(t, now) {
			continue
		}
		due = append(due, DueReminder{TaskID: t.ID, User: t.User, Title: t.Title, DueAt: t.ReminderAt})
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].DueAt.Before(due[j].DueAt) })

	if len(due) > 0 {
		e.log.Debug().Str("user", user).Int("due", len(due)).Msg("reminders due")
	}
	return due, nil
}

// Acknowledge retires a due reminder by marking the task notified. It
// will not reappear from CheckDue until a Snooze advances its time.
func (e *Engine) Acknowledge(ctx context.Context, id string) error {
	if _, err := e.repo.Acknowledge(ctx, id); err != nil {
		return err
	}
	e.log.Info().Str("id", id).Msg("reminder acknowledged")
	return nil
}

// Snooze advances the task's reminder time and clears its notified
// flag; the id also leaves the surfaced set so the reminder surfaces
// again when the new time arrives.
func (e *Engine) Snooze(ctx context.Context, id string, delta time.Duration) error {
	task, err := e.repo.Snooze(ctx, id, delta)
	if err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.surfaced, id)
	e.mu.Unlock()
	e.log.Info().Str("id", id).Time("until", task.ReminderAt).Msg("reminder snoozed")
	return nil
}

// Unsurfaced filters due to the reminders not yet shown this session.
// It does not mark anything; call MarkSurfaced once rendered.
func (e *Engine) Unsurfaced(due []DueReminder) []DueReminder {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]DueReminder, 0, len(due))
	for _, d := range due {
		if _, ok := e.surfaced[d.TaskID]; !ok {
			out = append(out, d)
		}
	}
	return out
}

func (e *Engine) MarkSurfaced(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surfaced[id] = struct{}{}
}

func (e *Engine) AlreadySurfaced(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.surfaced[id]
	return ok
}

// ResetSession clears the surfaced set, on sign-out or user switch.
func (e *Engine) ResetSession() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surfaced = make(map[string]struct{})
}

func (e *Engine) matches(t model.Task, now time.Time) bool {
	switch e.policy {
	case MatchExactMinute:
		return t.ReminderAt.Format("15:04") == now.Format("15:04")
	default:
		return !t.ReminderAt.After(now)
	}
}
