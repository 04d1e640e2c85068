package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// FormRunner wraps a huh form in a bubbletea model and tracks whether the
// user completed or abandoned it.
type FormRunner struct {
	form      *huh.Form
	canceled  bool
	completed bool
	width     int
}

// NewFormRunner wraps the given form.
func NewFormRunner(form *huh.Form) *FormRunner {
	return &FormRunner{form: form}
}

func (f *FormRunner) Init() tea.Cmd {
	return f.form.Init()
}

func (f *FormRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			f.canceled = true
			return f, tea.Quit
		}
	case tea.WindowSizeMsg:
		f.width = msg.Width
	}

	form, cmd := f.form.Update(msg)
	if frm, ok := form.(*huh.Form); ok {
		f.form = frm
		switch f.form.State {
		case huh.StateCompleted:
			f.completed = true
			return f, tea.Quit
		case huh.StateAborted:
			f.canceled = true
			return f, tea.Quit
		}
	}
	return f, cmd
}

func (f *FormRunner) View() string {
	return f.form.View()
}

// Canceled reports whether the user abandoned the form.
func (f *FormRunner) Canceled() bool {
	return f.canceled
}

// Completed reports whether every group was submitted.
func (f *FormRunner) Completed() bool {
	return f.completed
}
