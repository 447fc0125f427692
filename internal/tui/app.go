package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/chores-tui/internal/tasklist"
)

// Title is shown at the top of the screen
const Title = "Household Chores"

// EmptyMessage is shown instead of the list when there are no tasks
const EmptyMessage = "No chores yet. Add one above!"

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model represents the main application state
type Model struct {
	tasks    *tasklist.Controller
	input    textinput.Model
	help     help.Model
	keys     keyMap
	focus    focus
	selected int
	width    int
	height   int
	status   string

	// Clear confirmation mode
	confirmClear bool

	copyText func(string) error
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("141")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	removeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("54")).
			Padding(0, 1)
)

// New creates a new application model around a loaded controller
func New(tasks *tasklist.Controller) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type a new chore..."
	ti.Width = 40
	ti.CharLimit = 200
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ti.SetValue(tasks.InputText())
	ti.Focus()

	return &Model{
		tasks:    tasks,
		input:    ti,
		help:     help.New(),
		keys:     defaultKeyMap(),
		focus:    focusInput,
		copyText: clipboard.WriteAll,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.width > 8 {
			m.input.Width = m.width - 8 // border, padding and prompt
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""

		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}

		// Clear confirmation mode handling
		if m.confirmClear {
			m.confirmClear = false
			if key.Matches(msg, m.keys.Confirm) {
				m.tasks.ClearAll()
				m.selected = 0
				m.status = "Cleared all chores"
			}
			return m, nil
		}

		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		before := m.tasks.Len()
		m.tasks.AddTask(m.input.Value())
		if m.tasks.Len() > before {
			m.selected = m.tasks.Len() - 1
		}
		m.input.SetValue(m.tasks.InputText())
		return m, nil

	case key.Matches(msg, m.keys.Blur):
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}

	// Pass all other keys to the textinput
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.tasks.SetInputText(m.input.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.tasks.Tasks()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		m.focus = focusInput
		return m, tea.Batch(m.input.Focus(), textinput.Blink)

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(list)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Remove):
		if m.selected < len(list) {
			m.tasks.RemoveTask(list[m.selected].ID)
			m.selected = m.ensureValidSelection()
		}

	case key.Matches(msg, m.keys.Copy):
		if m.selected < len(list) {
			if err := m.copyText(list[m.selected].Text); err != nil {
				m.status = "Clipboard unavailable"
			} else {
				m.status = "Copied"
			}
		}

	case key.Matches(msg, m.keys.Clear):
		if len(list) > 0 {
			m.confirmClear = true
		}
	}

	return m, nil
}

// ensureValidSelection keeps the selection inside the list
func (m Model) ensureValidSelection() int {
	n := m.tasks.Len()
	if n == 0 {
		return 0
	}
	if m.selected >= n {
		return n - 1
	}
	return m.selected
}

// View renders the UI
func (m Model) View() string {
	if m.confirmClear {
		return m.renderClearConfirmation()
	}

	width := m.width
	if width == 0 {
		width = 60
	}

	var sections []string
	sections = append(sections, titleStyle.Render(Title))
	sections = append(sections, borderStyle.Width(width-4).Render(m.input.View()))
	sections = append(sections, m.renderList(width))

	if m.status != "" {
		sections = append(sections, statusStyle.Render(" "+m.status))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the task list or the empty message
func (m Model) renderList(width int) string {
	list := m.tasks.Tasks()
	if len(list) == 0 {
		return "\n " + emptyStyle.Render(EmptyMessage) + "\n"
	}

	// Rows above the list: title, input box, blank, header, rule; below: status, help
	visible := len(list)
	if m.height > 0 {
		visible = max(m.height-9, 1)
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	var lines []string
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf(" Chores (%d)", len(list)))
	lines = append(lines, " "+strings.Repeat("─", max(width-2, 1)))

	for i := start; i < len(list) && i < start+visible; i++ {
		line := "  " + list[i].Text
		if m.focus == focusList && i == m.selected {
			line = selectedStyle.Render(line) + "  " + removeStyle.Render("[d] remove")
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	if m.focus == focusInput {
		return " " + m.help.ShortHelpView(m.keys.inputHelp())
	}
	return " " + m.help.ShortHelpView(m.keys.listHelp(m.tasks.Len() > 0))
}

// renderClearConfirmation renders the clear-all confirmation overlay
func (m Model) renderClearConfirmation() string {
	message := fmt.Sprintf("Remove all %d chores?\n\ny: confirm • any other key: cancel", m.tasks.Len())

	content := lipgloss.NewStyle().
		Width(40).
		Align(lipgloss.Center, lipgloss.Center).
		Render(message)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(1, 2).
		Render(content)

	if m.width == 0 || m.height == 0 {
		return box
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
