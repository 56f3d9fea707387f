// Package ccdb loads, reconciles, processes and prints compile_commands.json databases.
package ccdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ccjpost/internal/model"
)

// ErrMissingField is returned when an entry lacks directory or file.
var ErrMissingField = errors.New("missing required field")

// rawEntry mirrors model.CompileEntry with pointers for the required fields,
// so an absent key can be told apart from an empty string.
type rawEntry struct {
	Command   string   `json:"command"`
	Arguments []string `json:"arguments"`
	Directory *string  `json:"directory"`
	File      *string  `json:"file"`
	Output    string   `json:"output"`
}

// LoadEntries reads a compile_commands.json file.
func LoadEntries(path string) ([]model.CompileEntry, error) {
	path = model.ExpandTilde(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	entries, err := ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// ParseEntries decodes a JSON array of entries.
func ParseEntries(data []byte) ([]model.CompileEntry, error) {
	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make([]model.CompileEntry, len(raw))
	for i, r := range raw {
		if r.Directory == nil {
			return nil, fmt.Errorf("entry %d: %w %q", i, ErrMissingField, "directory")
		}
		if r.File == nil {
			return nil, fmt.Errorf("entry %d: %w %q", i, ErrMissingField, "file")
		}
		entries[i] = model.CompileEntry{
			Command:   r.Command,
			Arguments: r.Arguments,
			Directory: *r.Directory,
			File:      *r.File,
			Output:    r.Output,
		}
	}
	return entries, nil
}

// LoadRules reads a postprocess configuration. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadRules(path string) (*model.Rules, error) {
	path = model.ExpandTilde(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open postprocess config %s: %w", path, err)
	}

	var rules model.Rules
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rules)
	default:
		err = json.Unmarshal(data, &rules)
	}
	if err != nil {
		return nil, fmt.Errorf("parse postprocess config %s: %w", path, err)
	}
	return &rules, nil
}
