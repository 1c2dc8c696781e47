package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jess-125/memoraid/internal/model"
)

// canonicalHeader fixes the column order of tasks.csv.
var canonicalHeader = []string{"id", "user", "title", "description", "reminder_time", "status", "notified"}

// headerAliases maps the header spellings of earlier data files onto
// the canonical columns. Role is a directory concern and is ignored.
var headerAliases = map[string]string{
	"id":            "id",
	"user":          "user",
	"title":         "title",
	"task":          "title",
	"description":   "description",
	"reminder_time": "reminder_time",
	"reminder":      "reminder_time",
	"status":        "status",
	"notified":      "notified",
}

// Store owns the task collection file. It is the sole authority on the
// on-disk format: one CSV row per task under a header row. Legacy files
// (User,Role,Task,Reminder,Status with or without ID) load transparently;
// the next SaveAll rewrites them in the canonical layout.
type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string { return s.path }

// LoadAll reads the whole collection. A missing file is created with
// just the header and yields an empty collection; only an unreadable
// medium fails, with *StorageError. Rows are repaired rather than
// dropped: blank ids get a fresh one, a missing status defaults to
// Pending, a missing notified column defaults to false, and an
// unparseable reminder time loads as undated with its raw text kept.
func (s *Store) LoadAll() ([]model.Task, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.SaveAll(nil); err != nil {
				return nil, err
			}
			return []model.Task{}, nil
		}
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &StorageError{Op: "parse", Path: s.path, Err: err}
	}
	if len(rows) == 0 {
		return []model.Task{}, nil
	}

	cols := indexHeader(rows[0])
	now := s.now()
	tasks := make([]model.Task, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		tasks = append(tasks, rowToTask(row, cols, now))
	}
	return tasks, nil
}

// SaveAll overwrites the file with header plus one row per task. The
// write goes to a sibling temp file first and is renamed into place so
// a crash mid-write cannot truncate the collection.
func (s *Store) SaveAll(tasks []model.Task) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(canonicalHeader); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	for _, t := range tasks {
		row := []string{t.ID, t.User, t.Title, t.Description, t.ReminderText(), string(t.Status), boolCell(t.Notified)}
		if err := w.Write(row); err != nil {
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

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	return cols
}

func rowToTask(row []string, cols map[string]int, now time.Time) model.Task {
	t := model.Task{
		ID:          cell(row, cols, "id"),
		User:        cell(row, cols, "user"),
		Title:       cell(row, cols, "title"),
		Description: cell(row, cols, "description"),
		ReminderRaw: cell(row, cols, "reminder_time"),
		Status:      parseStatus(cell(row, cols, "status")),
		Notified:    parseBoolCell(cell(row, cols, "notified")),
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if when, ok := model.ParseStoredReminder(t.ReminderRaw, now); ok {
		t.ReminderAt = when
		t.ReminderRaw = ""
	}
	return t
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseStatus(raw string) model.Status {
	for _, s := range []model.Status{model.StatusPending, model.StatusCompleted, model.StatusSkipped, model.StatusDeferred} {
		if strings.EqualFold(raw, string(s)) {
			return s
		}
	}
	return model.StatusPending
}

func parseBoolCell(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func boolCell(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
