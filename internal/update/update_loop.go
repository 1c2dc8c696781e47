package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jess-125/memoraid/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.pollCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case PollTickMsg:
		if m.User == "" {
			return m, m.pollCmd()
		}
		return m, tea.Batch(m.loadTasksCmd(), m.checkDueCmd(typed.At), m.pollCmd())

	case TasksLoadedMsg:
		m.Tasks = typed.Tasks
		m.Board = typed.Board
		m.clampCursor()
		return m, nil

	case DueRemindersMsg:
		for _, due := range typed.Due {
			m.Due = append(m.Due, due)
			m.Engine.MarkSurfaced(due.TaskID)
		}
		return m, nil

	case TaskMutatedMsg:
		m.Status = StatusBar{Text: typed.Note}
		if m.CurrentView == ViewAdd {
			m.CurrentView = ViewTasks
		}
		return m, m.loadTasksCmd()

	case WellnessLoggedMsg:
		m.Status = StatusBar{Text: "wellness entry logged"}
		m.mealInput.SetValue("")
		m.moodInput.SetValue("")
		return m, m.loadWellnessCmd()

	case WellnessLoadedMsg:
		m.WellnessLog = typed.Entries
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case AppErrorMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	data := views.AppData{Header: m.headerLine()}

	if m.HelpVisible {
		data.Body = views.RenderHelp()
		data.Footer = m.helpModel.View(m.Keys)
		return views.RenderApp(data)
	}

	switch m.CurrentView {
	case ViewSignIn:
		data.Body = views.RenderSignIn(m.signInData())
	case ViewTasks:
		if len(m.Due) > 0 {
			data.Banner = views.RenderDueBanner(views.DueBannerData{
				Title:  m.Due[0].Title,
				At:     m.Due[0].DueAt.Format("15:04"),
				Queued: len(m.Due) - 1,
			})
		}
		data.Body = views.RenderTaskList(m.taskListData())
	case ViewAdd:
		data.Body = views.RenderAddForm(views.AddFormData{
			TitleView: m.titleInput.View(),
			TimeView:  m.timeInput.View(),
			DescView:  m.descInput.View(),
		})
	case ViewWellness:
		data.Body = views.RenderWellness(m.wellnessData())
	}

	if m.Status.Text != "" {
		if m.Status.IsError {
			data.StatusLine = "error: " + m.Status.Text
		} else {
			data.StatusLine = m.Status.Text
		}
	}
	if m.CurrentView == ViewTasks {
		data.Footer = m.helpModel.View(m.Keys)
	}
	return views.RenderApp(data)
}

func (m Model) headerLine() string {
	if m.User == "" {
		return "memoraid"
	}
	return fmt.Sprintf("memoraid | %s (%s)", m.User, m.Role)
}

func (m Model) signInData() views.SignInData {
	entries := make([]views.SignInEntry, 0, len(m.Cfg.Users))
	for _, u := range m.Cfg.Users {
		entries = append(entries, views.SignInEntry{Name: u.Name, Role: string(u.Role)})
	}
	return views.SignInData{Entries: entries, Cursor: m.SignInCursor}
}

func (m Model) taskListData() views.TaskListData {
	data := views.TaskListData{}
	if m.Searching || m.searchInput.Value() != "" {
		data.Search = m.searchInput.View()
	}
	for i, t := range m.Tasks {
		data.Rows = append(data.Rows, views.TaskRowData{
			Title:    t.Title,
			Reminder: t.ReminderText(),
			Status:   string(t.Status),
			Notified: t.Notified,
			Selected: i == m.Cursor && !m.Searching,
		})
	}
	for _, group := range m.Board {
		watch := views.WatchGroupData{Name: group.Name}
		for _, t := range group.Tasks {
			watch.Rows = append(watch.Rows, views.TaskRowData{
				Title:    t.Title,
				Reminder: t.ReminderText(),
				Status:   string(t.Status),
				Notified: t.Notified,
			})
		}
		data.Watching = append(data.Watching, watch)
	}
	return data
}

func (m Model) wellnessData() views.WellnessData {
	data := views.WellnessData{
		MealView: m.mealInput.View(),
		MoodView: m.moodInput.View(),
	}
	for _, e := range m.WellnessLog {
		data.Rows = append(data.Rows, views.WellnessRowData{Date: e.Date, Meal: e.Meal, Mood: e.Mood})
	}
	return data
}
