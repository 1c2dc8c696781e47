// Package query holds pure, side-effect-free helpers over an in-memory
// task collection. Callers own loading; nothing here touches storage.
package query

import (
	"sort"
	"strings"

	"github.com/Jess-125/memoraid/internal/model"
)

// SortUpcomingFirst returns a copy ordered ascending by reminder time.
// Undated tasks sort after every dated one; ties and the undated block
// keep their original relative order.
func SortUpcomingFirst(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.HasReminder() && b.HasReminder():
			return a.ReminderAt.Before(b.ReminderAt)
		case a.HasReminder():
			return true
		default:
			return false
		}
	})
	return out
}

// FilterByUser keeps tasks whose owner matches exactly.
func FilterByUser(tasks []model.Task, user string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.User == user {
			out = append(out, t)
		}
	}
	return out
}

// FilterByTitleSubstring keeps tasks whose title contains text,
// case-insensitively. Empty text returns the input unchanged.
func FilterByTitleSubstring(tasks []model.Task, text string) []model.Task {
	if text == "" {
		return tasks
	}
	needle := strings.ToLower(text)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}
