package model

import (
	"errors"
	"strings"
	"time"
)

// WellnessDateLayout is the on-disk date format of the wellness log.
const WellnessDateLayout = "2006-01-02"

// WellnessEntry is one meal/mood log line for a user on a given day.
// The log is append-only; entries have no identity beyond their row.
type WellnessEntry struct {
	User string
	Date string
	Meal string
	Mood string
}

func (e WellnessEntry) Validate() error {
	if strings.TrimSpace(e.User) == "" {
		return errors.New("model: wellness user is required")
	}
	if _, err := time.Parse(WellnessDateLayout, e.Date); err != nil {
		return errors.New("model: wellness date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(e.Meal) == "" && strings.TrimSpace(e.Mood) == "" {
		return errors.New("model: wellness entry needs a meal or a mood")
	}
	return nil
}
