package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bagdasarian/octofit-tracker/internal/editflow"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
)

const (
	fieldName = iota
	fieldUsername
	fieldEmail
	fieldPassword
	fieldTeam
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Username", "Email", "Password", "Team"}

var (
	labelStyle   = lipgloss.NewStyle().Width(10)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	diffStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type savedMsg struct{ err error }

// Editor is the terminal user edit form. It drives an editflow.Flow that has
// already been opened with Begin. The flow is only touched from Update, and
// not at all while a save is running.
type Editor struct {
	flow     *editflow.Flow
	commit   tea.Cmd
	username string
	inputs   [fieldCount]textinput.Model
	focus    int

	saving   bool
	saved    bool
	canceled bool
	preview  string
	err      error
}

func NewEditor(ctx context.Context, flow *editflow.Flow) Editor {
	form := flow.Form()
	values := [fieldCount]string{form.Name, form.Username, form.Email, "", form.Team}

	teams := []string{readmodel.NoTeam}
	for _, t := range flow.Teams() {
		teams = append(teams, t.Name)
	}

	m := Editor{
		flow:     flow,
		username: flow.User().Username,
		commit: func() tea.Msg {
			return savedMsg{err: flow.Save(ctx)}
		},
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		in.Width = 40
		in.SetValue(values[i])
		switch i {
		case fieldPassword:
			in.EchoMode = textinput.EchoPassword
			in.Placeholder = "unchanged"
		case fieldTeam:
			in.Placeholder = readmodel.NoTeam
			in.ShowSuggestions = true
			in.SetSuggestions(teams)
		}
		m.inputs[i] = in
	}
	m.inputs[fieldName].Focus()
	return m
}

func (m Editor) Init() tea.Cmd {
	return textinput.Blink
}

func (m Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.saved = true
		m.username = m.flow.User().Username
		return m, tea.Quit

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			m.flow.Cancel()
			m.canceled = true
			return m, tea.Quit
		case "tab", "down":
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.setFocus(m.focus - 1)
			return m, cmd
		case "ctrl+p":
			m.showPreview()
			return m, nil
		case "ctrl+s":
			return m.save()
		case "enter":
			if m.focus < fieldCount-1 {
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			}
			return m.save()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Editor) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

func (m *Editor) form() editflow.Form {
	return editflow.Form{
		Name:     m.inputs[fieldName].Value(),
		Username: m.inputs[fieldUsername].Value(),
		Email:    m.inputs[fieldEmail].Value(),
		Password: m.inputs[fieldPassword].Value(),
		Team:     m.inputs[fieldTeam].Value(),
	}
}

func (m *Editor) showPreview() {
	m.err = nil
	m.preview = ""
	if err := m.flow.SetForm(m.form()); err != nil {
		m.err = err
		return
	}
	plan, err := m.flow.Plan()
	if err != nil {
		m.err = err
		return
	}
	m.preview = plan.Diff()
	if m.preview == "" {
		m.preview = "No membership changes."
	}
}

func (m Editor) save() (tea.Model, tea.Cmd) {
	m.err = nil
	if err := m.flow.SetForm(m.form()); err != nil {
		m.err = err
		return m, nil
	}
	m.saving = true
	return m, m.commit
}

func (m Editor) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Edit " + m.username))
	sb.WriteString("\n\n")

	for i, in := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = focusedStyle.Render(label)
		}
		sb.WriteString(label + " " + in.View() + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.saving:
		sb.WriteString(mutedStyle.Render("Saving...") + "\n")
	case m.saved:
		sb.WriteString(successStyle.Render("Saved "+m.username+".") + "\n")
	}
	if m.err != nil {
		sb.WriteString(ErrorLine(m.err) + "\n")
	}
	if m.preview != "" {
		sb.WriteString(diffStyle.Render(strings.TrimRight(m.preview, "\n")) + "\n")
	}

	sb.WriteString(mutedStyle.Render("tab next field · ctrl+p preview · ctrl+s save · esc cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// Saved reports whether the editor exited after a successful save.
func (m Editor) Saved() bool { return m.saved }

// Canceled reports whether the user left without saving.
func (m Editor) Canceled() bool { return m.canceled }

// Err is the last save or validation error shown in the form.
func (m Editor) Err() error { return m.err }

// RunEditor runs the editor as a full-screen program and returns its final
// state.
func RunEditor(ctx context.Context, flow *editflow.Flow, opts ...tea.ProgramOption) (Editor, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewEditor(ctx, flow), opts...).Run()
	if err != nil {
		return Editor{}, err
	}
	return final.(Editor), nil
}
