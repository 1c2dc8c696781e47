package model

import (
	"testing"
	"time"
)

func TestStatusIsValid(t *testing.T) {
	valid := []Status{StatusPending, StatusCompleted, StatusSkipped, StatusDeferred}
	for _, s := range valid {
		if !s.IsValid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if Status("Done").IsValid() {
		t.Fatalf("expected unknown status to be invalid")
	}
	if Status("").IsValid() {
		t.Fatalf("expected empty status to be invalid")
	}
}

func TestParseReminderInputFullLayout(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	when, err := ParseReminderInput("2025-01-02 09:30", now)
	if err != nil {
		t.Fatalf("parse full layout: %v", err)
	}
	want := time.Date(2025, 1, 2, 9, 30, 0, 0, time.Local)
	if !when.Equal(want) {
		t.Fatalf("expected %v, got %v", want, when)
	}
}

func TestParseReminderInputClockMeansToday(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	when, err := ParseReminderInput("09:00", now)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	want := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	if !when.Equal(want) {
		t.Fatalf("expected today at 09:00 (%v), got %v", want, when)
	}
}

func TestParseReminderInputEmptyMeansNoReminder(t *testing.T) {
	when, err := ParseReminderInput("   ", time.Now())
	if err != nil {
		t.Fatalf("empty input should not fail: %v", err)
	}
	if !when.IsZero() {
		t.Fatalf("expected zero time, got %v", when)
	}
}

func TestParseReminderInputRejectsGarbage(t *testing.T) {
	if _, err := ParseReminderInput("not-a-time", time.Now()); err == nil {
		t.Fatalf("expected error for unparseable input")
	}
}

func TestParseStoredReminderNeverFails(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	if _, ok := ParseStoredReminder("garbage", now); ok {
		t.Fatalf("expected ok=false for garbage")
	}
	when, ok := ParseStoredReminder("09:00", now)
	if !ok {
		t.Fatalf("expected legacy clock value to parse")
	}
	if when.Hour() != 9 || when.Day() != 1 {
		t.Fatalf("expected today 09:00, got %v", when)
	}
}

func TestReminderTextRoundTrip(t *testing.T) {
	dated := Task{ReminderAt: time.Date(2025, 1, 1, 9, 5, 0, 0, time.Local)}
	if got := dated.ReminderText(); got != "2025-01-01 09:05" {
		t.Fatalf("expected canonical text, got %q", got)
	}
	undated := Task{ReminderRaw: "whenever"}
	if got := undated.ReminderText(); got != "whenever" {
		t.Fatalf("expected raw text preserved, got %q", got)
	}
}

func TestTaskValidate(t *testing.T) {
	base := Task{ID: "t-1", User: "Grace", Title: "Take medication", Status: StatusPending}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	broken := base
	broken.Title = "  "
	if err := broken.Validate(); err == nil {
		t.Fatalf("expected error for blank title")
	}

	broken = base
	broken.Status = "Done"
	if err := broken.Validate(); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestWellnessEntryValidate(t *testing.T) {
	good := WellnessEntry{User: "Grace", Date: "2025-01-01", Meal: "soup"}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
	bad := WellnessEntry{User: "Grace", Date: "01/01/2025", Meal: "soup"}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for bad date")
	}
	empty := WellnessEntry{User: "Grace", Date: "2025-01-01"}
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected error for entry with neither meal nor mood")
	}
}
