package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Jess-125/memoraid/internal/config"
	"github.com/Jess-125/memoraid/internal/model"
	"github.com/Jess-125/memoraid/internal/scheduler"
	"github.com/Jess-125/memoraid/internal/storage"
)

type View string

const (
	ViewSignIn   View = "SignIn"
	ViewTasks    View = "Tasks"
	ViewAdd      View = "Add"
	ViewWellness View = "Wellness"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Complete key.Binding
	Skip     key.Binding
	Defer    key.Binding
	Reopen   key.Binding
	Search   key.Binding
	Wellness key.Binding
	SignOut  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Ack      key.Binding
	Snooze   key.Binding
	Dismiss  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Search, k.Wellness, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Delete},
		{k.Complete, k.Skip, k.Defer, k.Reopen},
		{k.Search, k.Wellness, k.SignOut, k.Quit},
		{k.Ack, k.Snooze, k.Dismiss, k.Help},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Skip:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "skip")),
		Defer:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "defer")),
		Reopen:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reopen")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Wellness: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wellness")),
		SignOut:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Ack:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Snooze:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "snooze")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	}
}

// BoardGroup is one watched elderly user's task list on a caregiver's
// dashboard.
type BoardGroup struct {
	Name  string
	Tasks []model.Task
}

type PollTickMsg struct {
	At time.Time
}

type TasksLoadedMsg struct {
	Tasks []model.Task
	Board []BoardGroup
}

type DueRemindersMsg struct {
	Due []scheduler.DueReminder
}

type TaskMutatedMsg struct {
	Note string
}

type WellnessLoggedMsg struct{}

type WellnessLoadedMsg struct {
	Entries []model.WellnessEntry
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type AppErrorMsg struct {
	Err error
}

// Model is the Bubble Tea state of the whole front-end. It never talks
// to the store directly: reads and mutations go through the repository
// and the reminder engine inside tea.Cmd closures, so the event loop
// stays responsive while a load-modify-save cycle runs.
type Model struct {
	Cfg      config.Config
	Repo     *storage.Repository
	Engine   *scheduler.Engine
	Wellness *storage.WellnessStore

	CurrentView View
	User        string
	Role        config.Role

	SignInCursor int

	Tasks  []model.Task
	Board  []BoardGroup
	Cursor int

	// Due is the banner queue: due reminders surfaced this session and
	// not yet acted on. The engine's surfaced set keeps re-polls from
	// re-queueing them.
	Due []scheduler.DueReminder

	Searching   bool
	searchInput textinput.Model

	titleInput textinput.Model
	timeInput  textinput.Model
	descInput  textinput.Model
	addFocus   int

	mealInput   textinput.Model
	moodInput   textinput.Model
	wellFocus   int
	WellnessLog []model.WellnessEntry

	Status      StatusBar
	Keys        KeyMap
	helpModel   help.Model
	HelpVisible bool
	Quitting    bool

	now func() time.Time
}

func NewModel(cfg config.Config, repo *storage.Repository, engine *scheduler.Engine, wellness *storage.WellnessStore) Model {
	m := Model{
		Cfg:         cfg,
		Repo:        repo,
		Engine:      engine,
		Wellness:    wellness,
		CurrentView: ViewSignIn,
		Keys:        DefaultKeyMap(),
		helpModel:   help.New(),
		now:         time.Now,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "title contains..."
	m.searchInput.CharLimit = 60

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Take medication"
	m.titleInput.CharLimit = 80
	m.timeInput = textinput.New()
	m.timeInput.Placeholder = model.ReminderLayout
	m.timeInput.CharLimit = 20
	m.descInput = textinput.New()
	m.descInput.Placeholder = "optional details"
	m.descInput.CharLimit = 120

	m.mealInput = textinput.New()
	m.mealInput.Placeholder = "what was eaten"
	m.mealInput.CharLimit = 80
	m.moodInput = textinput.New()
	m.moodInput.Placeholder = "how they feel"
	m.moodInput.CharLimit = 80

	return m
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
