package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the screen responds to
type keyMap struct {
	Add       key.Binding
	Focus     key.Binding
	Blur      key.Binding
	Up        key.Binding
	Down      key.Binding
	Remove    key.Binding
	Copy      key.Binding
	Clear     key.Binding
	Confirm   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "a", "i"),
			key.WithHelp("a/tab", "new task"),
		),
		Blur: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "list"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "x", "delete"),
			key.WithHelp("d", "remove"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// inputHelp is shown while typing a new task
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Add, k.Blur, k.ForceQuit}
}

// listHelp is shown while browsing the list
func (k keyMap) listHelp(hasTasks bool) []key.Binding {
	if !hasTasks {
		return []key.Binding{k.Focus, k.Quit}
	}
	return []key.Binding{k.Down, k.Up, k.Focus, k.Remove, k.Copy, k.Clear, k.Quit}
}
