package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the cursor blink.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles events.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "enter":
			m.Done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.SelectedIdx < len(m.Matches)-1 {
				m.SelectedIdx++
			}
			return m, nil
		case "tab":
			if m.SelectedIdx < len(m.Matches) {
				idx := m.Matches[m.SelectedIdx].Index
				m.Chosen[idx] = !m.Chosen[idx]
				if m.SelectedIdx < len(m.Matches)-1 {
					m.SelectedIdx++
				}
			}
			return m, nil
		}
	}

	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != m.lastQuery {
		m.SelectedIdx = 0
		m.filter()
	}
	return m, cmd
}
