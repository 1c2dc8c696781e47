package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidStatus = errors.New("model: invalid task status")

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusSkipped   Status = "Skipped"
	StatusDeferred  Status = "Deferred"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped, StatusDeferred:
		return true
	default:
		return false
	}
}

// ReminderLayout is the canonical reminder time format, on disk and in
// user input: full date plus 24-hour clock, minute resolution.
const ReminderLayout = "2006-01-02 15:04"

// clockLayout is the bare time-of-day form accepted from earlier data
// files and from quick input; it means "today at that time".
const clockLayout = "15:04"

// Task is one reminder/chore owned by one user.
//
// A zero ReminderAt means the task is undated: either it never had a
// reminder or the stored text did not parse. Undated tasks never fire
// and sort after all dated ones. ReminderRaw keeps the stored text
// verbatim so an unparseable value survives a load/save cycle instead
// of being destroyed.
type Task struct {
	ID          string
	User        string
	Title       string
	Description string
	ReminderAt  time.Time
	ReminderRaw string
	Status      Status
	Notified    bool
}

func (t Task) HasReminder() bool { return !t.ReminderAt.IsZero() }

// ReminderText returns the value serialized for the reminder_time
// column: the canonical layout for dated tasks, the raw stored text
// otherwise.
func (t Task) ReminderText() string {
	if t.HasReminder() {
		return t.ReminderAt.Format(ReminderLayout)
	}
	return t.ReminderRaw
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.User) == "" {
		return errors.New("model: task user is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// ParseReminderInput parses user-supplied reminder text. Empty input
// means no reminder. A bare HH:MM is interpreted as today at that time
// in now's location; there is no automatic daily recurrence, callers
// wanting the same reminder tomorrow re-create the task.
func ParseReminderInput(text string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if when, err := time.ParseInLocation(ReminderLayout, trimmed, now.Location()); err == nil {
		return when, nil
	}
	clock, err := time.Parse(clockLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: reminder time %q is not %q or %q", trimmed, ReminderLayout, clockLayout)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}

// ParseStoredReminder parses a reminder_time cell read back from disk.
// Unlike ParseReminderInput it never fails: text that matches neither
// layout loads as undated with ok=false, and the caller keeps the raw
// text so the row round-trips.
func ParseStoredReminder(text string, now time.Time) (time.Time, bool) {
	when, err := ParseReminderInput(text, now)
	if err != nil || when.IsZero() {
		return time.Time{}, false
	}
	return when, true
}
