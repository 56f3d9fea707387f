package ccdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccjpost/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEntries(t *testing.T) {
	path := writeFile(t, "compile_commands.json", `[
  {"directory": "/p", "file": "a.cpp", "command": "g++ -c a.cpp"},
  {"directory": "/p", "file": "b.cpp", "arguments": ["g++", "-c", "b.cpp"], "output": "b.o"}
]`)

	entries, err := LoadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.CompileEntry{Directory: "/p", File: "a.cpp", Command: "g++ -c a.cpp"}, entries[0])
	assert.Equal(t, []string{"g++", "-c", "b.cpp"}, entries[1].Arguments)
	assert.Equal(t, "b.o", entries[1].Output)
	assert.Empty(t, entries[1].Command)
}

func TestLoadEntries_MissingFile(t *testing.T) {
	_, err := LoadEntries(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "cannot open")
}

func TestLoadEntries_Malformed(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"directory": "/p", "file": `)
	_, err := LoadEntries(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse "+path)
}

func TestParseEntries_RequiredFields(t *testing.T) {
	_, err := ParseEntries([]byte(`[{"directory": "/p", "file": "a.c"}, {"file": "b.c"}]`))
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Contains(t, err.Error(), "directory")

	_, err = ParseEntries([]byte(`[{"directory": "/p"}]`))
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "file")
}

func TestParseEntries_EmptyStringsAreValid(t *testing.T) {
	entries, err := ParseEntries([]byte(`[{"directory": "", "file": ""}]`))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadRules_JSON(t *testing.T) {
	path := writeFile(t, "pp.json", `{"remove": ["-g"], "insert": ["-DX"], "replace": ["a,b"], "ignore_files": ["gen/"]}`)
	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, &model.Rules{
		Remove:      []string{"-g"},
		Insert:      []string{"-DX"},
		Replace:     []string{"a,b"},
		IgnoreFiles: []string{"gen/"},
	}, rules)
}

func TestLoadRules_MissingFieldsDefaultEmpty(t *testing.T) {
	path := writeFile(t, "pp.json", `{"insert": ["-DX"]}`)
	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Empty(t, rules.Remove)
	assert.Empty(t, rules.Replace)
	assert.Empty(t, rules.IgnoreFiles)
}

func TestLoadRules_YAML(t *testing.T) {
	path := writeFile(t, "pp.yaml", `
remove:
  - "-O."
insert:
  - -D__GNUC__=10
ignore_files:
  - third_party/
`)
	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"-O."}, rules.Remove)
	assert.Equal(t, []string{"-D__GNUC__=10"}, rules.Insert)
	assert.Equal(t, []string{"third_party/"}, rules.IgnoreFiles)
}

func TestLoadRules_Malformed(t *testing.T) {
	path := writeFile(t, "pp.json", `{"remove": "-g"}`)
	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse postprocess config")
}
