// Package confirm asks the user to confirm a delete, either with a
// bubbletea prompt or with a plain line prompt when no terminal is
// attached.
package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the answer given to the prompt
type Decision int

const (
	// Undecided means the prompt was left without an answer
	Undecided Decision = iota
	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted reports whether the delete was confirmed
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
	Check        lipgloss.Style
}

type KeyMap struct {
	Accept key.Binding
	Deny   key.Binding
	Toggle key.Binding
	Enter  key.Binding
}

// ShortHelp is part of the help.KeyMap interface
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Deny, k.Toggle}
}

// FullHelp is part of the help.KeyMap interface
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var DefaultKeyMap = KeyMap{
	Accept: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "delete"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "N", tea.KeyEsc.String(), tea.KeyCtrlC.String()),
		key.WithHelp("n", "cancel"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("p", "P", tea.KeyTab.String()),
		key.WithHelp("p", "permanent"),
	),
	Enter: key.NewBinding(key.WithKeys(tea.KeyEnter.String())),
}

// Model is a one-key delete prompt with a "delete permanently" toggle
type Model struct {
	PromptPrefix string
	Prompt       string

	// Permanent is the state of the toggle
	Permanent bool
	// Locked keeps Permanent set; deletes from the recycle bin cannot
	// be recycled again
	Locked bool

	// DefaultValue is chosen on enter
	DefaultValue Decision

	ShowHelp bool
	Styles   Styles
	KeyMap   KeyMap

	selected Decision
	done     bool
	help     help.Model
}

// New creates a prompt that defaults to cancelling
func New(prompt string) Model {
	return Model{
		PromptPrefix: "? ",
		Prompt:       prompt,
		DefaultValue: Denied,
		ShowHelp:     true,
		KeyMap:       DefaultKeyMap,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
			Check:        lipgloss.NewStyle().Foreground(lipgloss.Color(colors.ErrorPrefix)).Bold(true),
		},
		help: help.New(),
	}
}

// Selected returns the answer, Undecided until the prompt finished
func (m *Model) Selected() Decision {
	return m.selected
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

func (m *Model) Init() tea.Cmd {
	if m.Locked {
		m.Permanent = true
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.KeyMap.Accept):
			return m.decide(Accepted)
		case key.Matches(msg, m.KeyMap.Deny):
			return m.decide(Denied)
		case key.Matches(msg, m.KeyMap.Enter):
			if m.DefaultValue != Undecided {
				return m.decide(m.DefaultValue)
			}
		case key.Matches(msg, m.KeyMap.Toggle):
			if !m.Locked {
				m.Permanent = !m.Permanent
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}
	b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt))
	b.WriteString(" ")

	if m.done {
		b.WriteString(m.Styles.Text.Inline(true).Render(answer(m.selected, m.Permanent)))
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.Styles.Placeholder.Inline(true).Render(placeholder(m.DefaultValue)))
	b.WriteString("\n  ")
	b.WriteString(m.checkbox())
	if m.ShowHelp {
		b.WriteString("\n  ")
		b.WriteString(m.help.View(m.KeyMap))
	}
	b.WriteRune('\n')
	return b.String()
}

func (m *Model) checkbox() string {
	label := "Delete permanently"
	if m.Locked {
		label += " (items in the recycle bin)"
	}
	if m.Permanent {
		return m.Styles.Check.Render("[x]") + " " + label
	}
	return "[ ] " + label
}

func placeholder(def Decision) string {
	switch def {
	case Accepted:
		return "(Y/n)"
	case Denied:
		return "(y/N)"
	default:
		return "(y/n)"
	}
}

func answer(d Decision, permanent bool) string {
	switch {
	case d != Accepted:
		return "no"
	case permanent:
		return "yes, permanently"
	default:
		return "yes"
	}
}
