package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Jess-125/memoraid/internal/model"
)

var wellnessHeader = []string{"user", "date", "meal", "mood"}

// WellnessStore persists the meal/mood log, one CSV row per entry.
// Same contract as the task Store: missing file is created with the
// header, saves are whole-file and atomic, appends are serialized.
type WellnessStore struct {
	mu   sync.Mutex
	path string
}

func NewWellnessStore(path string) *WellnessStore {
	return &WellnessStore{path: path}
}

func (s *WellnessStore) LoadAll() ([]model.WellnessEntry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.saveAll(nil); err != nil {
				return nil, err
			}
			return []model.WellnessEntry{}, nil
		}
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &StorageError{Op: "parse", Path: s.path, Err: err}
	}

	entries := make([]model.WellnessEntry, 0)
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		entries = append(entries, model.WellnessEntry{
			User: wellnessCell(row, 0),
			Date: wellnessCell(row, 1),
			Meal: wellnessCell(row, 2),
			Mood: wellnessCell(row, 3),
		})
	}
	return entries, nil
}

// Append validates the entry and adds it to the log.
func (s *WellnessStore) Append(entry model.WellnessEntry) error {
	if err := entry.Validate(); err != nil {
		return &ValidationError{Field: "entry", Reason: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.LoadAll()
	if err != nil {
		return err
	}
	return s.saveAll(append(entries, entry))
}

// ListByUser returns the user's entries in log order.
func (s *WellnessStore) ListByUser(user string) ([]model.WellnessEntry, error) {
	entries, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.WellnessEntry, 0, len(entries))
	for _, e := range entries {
		if e.User == user {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *WellnessStore) saveAll(entries []model.WellnessEntry) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(wellnessHeader); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	for _, e := range entries {
		if err := w.Write([]string{e.User, e.Date, e.Meal, e.Mood}); err != nil {
			return &StorageError{Op: "encode", Path: s.path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return &StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &StorageError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}

func wellnessCell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
