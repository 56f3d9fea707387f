// Package tui implements the interactive multi-select fuzzy picker.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// ErrCancelled is returned by Run when the user aborts the selection.
var ErrCancelled = errors.New("selection cancelled")

// PickerModel holds the picker state.
type PickerModel struct {
	// Data
	Candidates []string
	Matches    fuzzy.Matches // Candidates passing the query, best first

	// UI State
	SelectedIdx int // Cursor position within Matches
	Chosen      map[int]bool
	WindowSize  tea.WindowSizeMsg
	Prompt      string

	Cancelled bool
	Done      bool

	// Components
	Input     textinput.Model
	lastQuery string
}

// NewPicker returns a picker over candidates with an empty query.
func NewPicker(candidates []string, prompt string) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = ""
	ti.Focus()

	m := PickerModel{
		Candidates: candidates,
		Chosen:     make(map[int]bool),
		Prompt:     prompt,
		Input:      ti,
	}
	m.filter()
	return m
}

// filter recomputes Matches for the current query. An empty query lists every
// candidate in its original order.
func (m *PickerModel) filter() {
	query := m.Input.Value()
	m.lastQuery = query
	if query == "" {
		m.Matches = make(fuzzy.Matches, len(m.Candidates))
		for i, c := range m.Candidates {
			m.Matches[i] = fuzzy.Match{Str: c, Index: i}
		}
	} else {
		m.Matches = fuzzy.Find(query, m.Candidates)
	}

	// Bounds check
	if m.SelectedIdx >= len(m.Matches) {
		if len(m.Matches) > 0 {
			m.SelectedIdx = len(m.Matches) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// Selection returns the chosen candidates in their original order. With
// nothing toggled it falls back to the row under the cursor.
func (m PickerModel) Selection() []string {
	var out []string
	for i, c := range m.Candidates {
		if m.Chosen[i] {
			out = append(out, c)
		}
	}
	if len(out) == 0 && m.SelectedIdx < len(m.Matches) {
		out = append(out, m.Matches[m.SelectedIdx].Str)
	}
	return out
}
