package views

import (
	"fmt"
	"strings"
)

type SignInEntry struct {
	Name string
	Role string
}

type SignInData struct {
	Entries []SignInEntry
	Cursor  int
}

func RenderSignIn(data SignInData) string {
	var b strings.Builder
	b.WriteString("select a profile:\n\n")
	for i, entry := range data.Entries {
		marker := "  "
		line := fmt.Sprintf("%s (%s)", entry.Name, entry.Role)
		if i == data.Cursor {
			marker = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("[enter] sign in  [j/k] move  [q] quit"))
	return strings.TrimRight(b.String(), "\n")
}

type TaskRowData struct {
	Title    string
	Reminder string
	Status   string
	Notified bool
	Selected bool
}

type WatchGroupData struct {
	Name string
	Rows []TaskRowData
}

type TaskListData struct {
	Search   string
	Rows     []TaskRowData
	Watching []WatchGroupData
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	if data.Search != "" {
		b.WriteString("search: " + data.Search + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render("no tasks yet — press [a] to add one") + "\n")
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	for _, group := range data.Watching {
		b.WriteString("\n" + headerStyle.Render("watching: "+group.Name) + "\n")
		if len(group.Rows) == 0 {
			b.WriteString(dimStyle.Render("  nothing scheduled") + "\n")
			continue
		}
		for _, row := range group.Rows {
			b.WriteString(renderTaskRow(row) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskRow(row TaskRowData) string {
	marker := "  "
	if row.Selected {
		marker = cursorStyle.Render("> ")
	}
	when := row.Reminder
	if when == "" {
		when = "unscheduled"
	}
	line := fmt.Sprintf("%-32s %-17s %s", clip(row.Title, 32), when, row.Status)
	switch {
	case row.Status == "Completed":
		line = doneStyle.Render(line)
	case row.Notified:
		line = dimStyle.Render(line)
	case row.Selected:
		line = cursorStyle.Render(line)
	}
	return marker + line
}

type DueBannerData struct {
	Title  string
	At     string
	Queued int
}

func RenderDueBanner(data DueBannerData) string {
	extra := ""
	if data.Queued > 0 {
		extra = fmt.Sprintf("  (+%d more)", data.Queued)
	}
	return fmt.Sprintf("REMINDER: %s — due %s%s\n%s",
		data.Title, data.At, extra,
		dimStyle.Render("[enter] done  [z] snooze  [esc] dismiss"))
}

type AddFormData struct {
	TitleView string
	TimeView  string
	DescView  string
}

func RenderAddForm(data AddFormData) string {
	var b strings.Builder
	b.WriteString("new task:\n\n")
	b.WriteString("title:       " + data.TitleView + "\n")
	b.WriteString("reminder:    " + data.TimeView + "\n")
	b.WriteString("description: " + data.DescView + "\n\n")
	b.WriteString(dimStyle.Render("time is YYYY-MM-DD HH:MM, or HH:MM for today; leave empty for no reminder\n"))
	b.WriteString(dimStyle.Render("[tab] next field  [enter] save  [esc] cancel"))
	return b.String()
}

type WellnessRowData struct {
	Date string
	Meal string
	Mood string
}

type WellnessData struct {
	MealView string
	MoodView string
	Rows     []WellnessRowData
}

func RenderWellness(data WellnessData) string {
	var b strings.Builder
	b.WriteString("wellness log (today):\n\n")
	b.WriteString("meal: " + data.MealView + "\n")
	b.WriteString("mood: " + data.MoodView + "\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render("no entries yet") + "\n")
	}
	for _, row := range data.Rows {
		b.WriteString(fmt.Sprintf("%s  meal: %-20s mood: %s\n", row.Date, clip(row.Meal, 20), row.Mood))
	}
	b.WriteString("\n" + dimStyle.Render("[tab] switch field  [enter] log  [esc] back"))
	return strings.TrimRight(b.String(), "\n")
}

const helpMarkdown = `# memoraid keys

## tasks
- **j/k** move, **a** add task, **d** delete
- **c** complete, **x** skip, **f** defer, **r** back to pending
- **/** search by title, **w** wellness log
- **o** sign out, **?** help, **q** quit

## reminder banner
- **enter** mark done (acknowledge), **z** snooze 5 minutes, **esc** dismiss for now

A dismissed reminder stays due and comes back after a restart; an
acknowledged one stays quiet until you snooze it.
`

func RenderHelp() string {
	return RenderMarkdown(helpMarkdown)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
