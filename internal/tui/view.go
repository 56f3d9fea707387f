package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"ccjpost/internal/model"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// defaultHeight is used until the first WindowSizeMsg arrives.
const defaultHeight = 24

func (m PickerModel) View() string {
	if m.Done || m.Cancelled {
		return ""
	}

	height := m.WindowSize.Height
	if height <= 0 {
		height = defaultHeight
	}
	// Half the terminal, minus prompt and status lines
	visibleItems := height/2 - 2
	if visibleItems < 3 {
		visibleItems = 3
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.Prompt + model.IconPrompt + " "))
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d (%d selected)  tab: toggle  enter: accept  esc: cancel",
		len(m.Matches), len(m.Candidates), m.chosenCount())))
	b.WriteString("\n")

	// Windowing Logic
	startIdx := 0
	endIdx := len(m.Matches)
	if len(m.Matches) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(m.Matches) {
			startIdx = len(m.Matches) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		match := m.Matches[i]

		cursor := " "
		if i == m.SelectedIdx {
			cursor = model.IconCursor
		}
		mark := model.IconUnselected
		if m.Chosen[match.Index] {
			mark = model.IconSelected
		}

		base := normalStyle
		if i == m.SelectedIdx {
			base = selectedStyle
		}
		b.WriteString(fmt.Sprintf("%s %s ", cursor, mark))
		b.WriteString(highlight(match, base))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m PickerModel) chosenCount() int {
	n := 0
	for _, on := range m.Chosen {
		if on {
			n++
		}
	}
	return n
}

// highlight renders the characters the fuzzy matcher hit in matchStyle.
func highlight(match fuzzy.Match, base lipgloss.Style) string {
	if len(match.MatchedIndexes) == 0 {
		return base.Render(match.Str)
	}
	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		hit[idx] = true
	}
	var b strings.Builder
	for i, r := range match.Str {
		if hit[i] {
			b.WriteString(matchStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
