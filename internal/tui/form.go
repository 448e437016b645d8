package tui

import (
	"errors"
	"strings"

	"todoflex/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldDesc
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Start", "End", "Notes"}

// addForm collects a new task for the selected day.
type addForm struct {
	date   string
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newAddForm(date string) *addForm {
	f := &addForm{date: date}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "What needs doing?"
	f.inputs[fieldStart].Placeholder = "HH:MM"
	f.inputs[fieldStart].CharLimit = 5
	f.inputs[fieldEnd].Placeholder = "HH:MM"
	f.inputs[fieldEnd].CharLimit = 5
	f.inputs[fieldDesc].Placeholder = "optional, markdown"
	f.inputs[fieldDesc].CharLimit = 2000
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *addForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// task validates the form and returns the task to create.
func (f *addForm) task() (model.Task, error) {
	t := model.Task{
		Date:        f.date,
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		StartTime:   strings.TrimSpace(f.inputs[fieldStart].Value()),
		EndTime:     strings.TrimSpace(f.inputs[fieldEnd].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDesc].Value()),
	}
	if t.Title == "" {
		return t, errors.New("title is required")
	}
	if !model.ValidTime(t.StartTime) || !model.ValidTime(t.EndTime) {
		return t, errors.New("times must be HH:MM")
	}
	return t, nil
}

type formResult int

const (
	formContinue formResult = iota
	formSubmit
	formCancel
)

func (f *addForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancel, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return formContinue, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return formContinue, nil
	case "enter", "ctrl+s":
		if msg.String() == "enter" && f.focus < fieldCount-1 {
			f.setFocus(f.focus + 1)
			return formContinue, nil
		}
		if _, err := f.task(); err != nil {
			f.err = err.Error()
			return formContinue, nil
		}
		return formSubmit, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return formContinue, cmd
}

func (f *addForm) view(width int) string {
	if width > 60 {
		width = 60
	}
	label := lipgloss.NewStyle().Width(7).Foreground(colorChromeFg)
	lines := []string{lipgloss.NewStyle().Bold(true).Render("New task · " + f.date), ""}
	for i := range f.inputs {
		f.inputs[i].Width = width - 10
		lines = append(lines, label.Render(fieldLabels[i])+" "+f.inputs[i].View())
	}
	lines = append(lines, "")
	if f.err != "" {
		lines = append(lines, styleError().Render(f.err))
	} else {
		lines = append(lines, styleMuted().Render("tab next · enter save · esc cancel"))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
