package update

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jess-125/memoraid/internal/model"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.HelpVisible {
		if key.Matches(msg, m.Keys.Help) || key.Matches(msg, m.Keys.Dismiss) {
			m.HelpVisible = false
		}
		return m, nil
	}

	switch m.CurrentView {
	case ViewSignIn:
		return m.handleSignInKey(msg)
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewAdd:
		return m.handleAddKey(msg)
	case ViewWellness:
		return m.handleWellnessKey(msg)
	}
	return m, nil
}

func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		if m.SignInCursor > 0 {
			m.SignInCursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.SignInCursor < len(m.Cfg.Users)-1 {
			m.SignInCursor++
		}
	case key.Matches(msg, m.Keys.Ack):
		if m.SignInCursor < len(m.Cfg.Users) {
			profile := m.Cfg.Users[m.SignInCursor]
			m.User = profile.Name
			m.Role = profile.Role
			m.CurrentView = ViewTasks
			m.Status = StatusBar{Text: "signed in as " + profile.Name}
			// fresh session: nothing counts as already surfaced
			m.Engine.ResetSession()
			m.Due = nil
			return m, tea.Batch(m.loadTasksCmd(), m.checkDueCmd(m.now()))
		}
	}
	return m, nil
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Searching {
		switch msg.String() {
		case "enter":
			m.Searching = false
			m.searchInput.Blur()
			return m, m.loadTasksCmd()
		case "esc":
			m.Searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			return m, m.loadTasksCmd()
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	// the due banner captures its keys while a reminder is showing
	if len(m.Due) > 0 {
		current := m.Due[0]
		switch {
		case key.Matches(msg, m.Keys.Ack):
			m.Due = m.Due[1:]
			return m, m.acknowledgeCmd(current.TaskID)
		case key.Matches(msg, m.Keys.Snooze):
			m.Due = m.Due[1:]
			return m, m.snoozeCmd(current.TaskID)
		case key.Matches(msg, m.Keys.Dismiss):
			// stays due and surfaced: gone until sign-out or restart
			m.Due = m.Due[1:]
			m.Status = StatusBar{Text: "reminder dismissed for this session"}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Add):
		m.CurrentView = ViewAdd
		m.addFocus = 0
		m.titleInput.SetValue("")
		m.timeInput.SetValue("")
		m.descInput.SetValue("")
		m.titleInput.Focus()
		m.timeInput.Blur()
		m.descInput.Blur()
	case key.Matches(msg, m.Keys.Delete):
		if t, ok := m.SelectedTask(); ok {
			return m, m.deleteTaskCmd(t.ID)
		}
	case key.Matches(msg, m.Keys.Complete):
		if t, ok := m.SelectedTask(); ok {
			return m, m.setStatusCmd(t.ID, model.StatusCompleted)
		}
	case key.Matches(msg, m.Keys.Skip):
		if t, ok := m.SelectedTask(); ok {
			return m, m.setStatusCmd(t.ID, model.StatusSkipped)
		}
	case key.Matches(msg, m.Keys.Defer):
		if t, ok := m.SelectedTask(); ok {
			return m, m.setStatusCmd(t.ID, model.StatusDeferred)
		}
	case key.Matches(msg, m.Keys.Reopen):
		if t, ok := m.SelectedTask(); ok {
			return m, m.setStatusCmd(t.ID, model.StatusPending)
		}
	case key.Matches(msg, m.Keys.Search):
		m.Searching = true
		m.searchInput.Focus()
	case key.Matches(msg, m.Keys.Wellness):
		m.CurrentView = ViewWellness
		m.wellFocus = 0
		m.mealInput.Focus()
		m.moodInput.Blur()
		return m, m.loadWellnessCmd()
	case key.Matches(msg, m.Keys.SignOut):
		m.Engine.ResetSession()
		m.User = ""
		m.Role = ""
		m.Tasks = nil
		m.Board = nil
		m.Due = nil
		m.Cursor = 0
		m.CurrentView = ViewSignIn
		m.Status = StatusBar{}
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = true
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewTasks
		return m, nil
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.addFocus = (m.addFocus + 1) % 3
		} else {
			m.addFocus = (m.addFocus + 2) % 3
		}
		m.titleInput.Blur()
		m.timeInput.Blur()
		m.descInput.Blur()
		switch m.addFocus {
		case 0:
			m.titleInput.Focus()
		case 1:
			m.timeInput.Focus()
		case 2:
			m.descInput.Focus()
		}
		return m, nil
	case "enter":
		return m, m.addTaskCmd(m.titleInput.Value(), m.timeInput.Value(), m.descInput.Value())
	}

	var cmd tea.Cmd
	switch m.addFocus {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.timeInput, cmd = m.timeInput.Update(msg)
	case 2:
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleWellnessKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewTasks
		return m, nil
	case "tab", "shift+tab":
		m.wellFocus = (m.wellFocus + 1) % 2
		m.mealInput.Blur()
		m.moodInput.Blur()
		if m.wellFocus == 0 {
			m.mealInput.Focus()
		} else {
			m.moodInput.Focus()
		}
		return m, nil
	case "enter":
		return m, m.logWellnessCmd(m.mealInput.Value(), m.moodInput.Value())
	}

	var cmd tea.Cmd
	if m.wellFocus == 0 {
		m.mealInput, cmd = m.mealInput.Update(msg)
	} else {
		m.moodInput, cmd = m.moodInput.Update(msg)
	}
	return m, cmd
}
