package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the picker on out, reading keys from the controlling terminal so
// stdout stays free for the selected paths.
func Run(candidates []string, out io.Writer) ([]string, error) {
	m := NewPicker(candidates, "Select C++ files: ")
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithInputTTY())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	result, ok := final.(PickerModel)
	if !ok || result.Cancelled {
		return nil, ErrCancelled
	}
	return result.Selection(), nil
}
