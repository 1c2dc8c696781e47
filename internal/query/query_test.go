package query

import (
	"testing"
	"time"

	"github.com/Jess-125/memoraid/internal/model"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.ParseInLocation(model.ReminderLayout, value, time.Local)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestSortUpcomingFirst(t *testing.T) {
	tasks := []model.Task{
		{ID: "undated-1", Title: "Sort photos"},
		{ID: "late", Title: "Evening walk", ReminderAt: at(t, "2025-01-01 18:00")},
		{ID: "undated-2", Title: "Tidy shelf"},
		{ID: "early", Title: "Take medication", ReminderAt: at(t, "2025-01-01 09:00")},
	}

	got := SortUpcomingFirst(tasks)

	wantOrder := []string{"early", "late", "undated-1", "undated-2"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %q, got %q", i, id, got[i].ID)
		}
	}
	// input order untouched
	if tasks[0].ID != "undated-1" {
		t.Fatalf("input slice was mutated")
	}
}

func TestSortUpcomingFirstStableOnTies(t *testing.T) {
	same := at(t, "2025-01-01 09:00")
	tasks := []model.Task{
		{ID: "a", ReminderAt: same},
		{ID: "b", ReminderAt: same},
		{ID: "c", ReminderAt: same},
	}
	got := SortUpcomingFirst(tasks)
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Fatalf("tie order not stable: position %d got %q", i, got[i].ID)
		}
	}
}

func TestFilterByUser(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", User: "Grace"},
		{ID: "2", User: "Samuel"},
		{ID: "3", User: "grace"},
	}
	got := FilterByUser(tasks, "Grace")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("user match must be exact, got %+v", got)
	}
}

func TestFilterByTitleSubstring(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "Take morning medication"},
		{ID: "2", Title: "Evening walk"},
	}

	got := FilterByTitleSubstring(tasks, "MEDIC")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("case-insensitive match failed: %+v", got)
	}

	got = FilterByTitleSubstring(tasks, "")
	if len(got) != len(tasks) {
		t.Fatalf("empty filter must return everything, got %d", len(got))
	}

	got = FilterByTitleSubstring(tasks, "doctor")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
