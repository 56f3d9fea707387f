package model

// Centralized icons for the picker
// Using simple single-width characters for consistent terminal rendering
const (
	IconCursor     = "›" // Row under the cursor
	IconSelected   = "●" // Toggled for output
	IconUnselected = "○"
	IconPrompt     = "❯"
)
