package update

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jess-125/memoraid/internal/config"
	"github.com/Jess-125/memoraid/internal/model"
	"github.com/Jess-125/memoraid/internal/storage"
)

func (m Model) pollCmd() tea.Cmd {
	return tea.Tick(m.Cfg.PollInterval(), func(t time.Time) tea.Msg {
		return PollTickMsg{At: t}
	})
}

func (m Model) loadTasksCmd() tea.Cmd {
	repo, cfg := m.Repo, m.Cfg
	user, role := m.User, m.Role
	filter := m.searchInput.Value()
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := repo.ListTasks(ctx, user, filter)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		var board []BoardGroup
		if role == config.RoleCaregiver {
			for _, name := range cfg.ElderlyNames() {
				if name == user {
					continue
				}
				rows, err := repo.ListTasks(ctx, name, "")
				if err != nil {
					return AppErrorMsg{Err: err}
				}
				board = append(board, BoardGroup{Name: name, Tasks: rows})
			}
		}
		return TasksLoadedMsg{Tasks: tasks, Board: board}
	}
}

func (m Model) checkDueCmd(now time.Time) tea.Cmd {
	engine, user := m.Engine, m.User
	return func() tea.Msg {
		due, err := engine.CheckDue(context.Background(), now, user)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return DueRemindersMsg{Due: engine.Unsurfaced(due)}
	}
}

func (m Model) addTaskCmd(title, timeText, desc string) tea.Cmd {
	repo, user := m.Repo, m.User
	return func() tea.Msg {
		_, err := repo.AddTask(context.Background(), user, title, desc, timeText)
		if err != nil {
			return mutationError(err)
		}
		return TaskMutatedMsg{Note: "task added"}
	}
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	repo := m.Repo
	return func() tea.Msg {
		if err := repo.DeleteTask(context.Background(), id); err != nil {
			return mutationError(err)
		}
		return TaskMutatedMsg{Note: "task deleted"}
	}
}

func (m Model) setStatusCmd(id string, status model.Status) tea.Cmd {
	repo := m.Repo
	return func() tea.Msg {
		if _, err := repo.UpdateStatus(context.Background(), id, status); err != nil {
			return mutationError(err)
		}
		return TaskMutatedMsg{Note: "marked " + string(status)}
	}
}

func (m Model) acknowledgeCmd(id string) tea.Cmd {
	engine := m.Engine
	return func() tea.Msg {
		if err := engine.Acknowledge(context.Background(), id); err != nil {
			return mutationError(err)
		}
		return TaskMutatedMsg{Note: "reminder marked done"}
	}
}

func (m Model) snoozeCmd(id string) tea.Cmd {
	engine, delta := m.Engine, m.Cfg.SnoozeDelta()
	return func() tea.Msg {
		if err := engine.Snooze(context.Background(), id, delta); err != nil {
			return mutationError(err)
		}
		return TaskMutatedMsg{Note: "snoozed"}
	}
}

func (m Model) logWellnessCmd(meal, mood string) tea.Cmd {
	store, user := m.Wellness, m.User
	date := m.now().Format(model.WellnessDateLayout)
	return func() tea.Msg {
		entry := model.WellnessEntry{User: user, Date: date, Meal: meal, Mood: mood}
		if err := store.Append(entry); err != nil {
			return mutationError(err)
		}
		return WellnessLoggedMsg{}
	}
}

func (m Model) loadWellnessCmd() tea.Cmd {
	store, user := m.Wellness, m.User
	return func() tea.Msg {
		entries, err := store.ListByUser(user)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return WellnessLoadedMsg{Entries: entries}
	}
}

// mutationError folds the recoverable error categories into a status
// line; only storage failures surface as app errors.
func mutationError(err error) tea.Msg {
	var validation *storage.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrNoReminderTime):
		return SetStatusMsg{Text: err.Error(), IsError: true}
	default:
		return AppErrorMsg{Err: err}
	}
}
