package ccdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccjpost/internal/model"
	"ccjpost/internal/rewrite"
)

func entry(dir, file, cmd string) model.CompileEntry {
	return model.CompileEntry{Directory: dir, File: file, Command: cmd}
}

func TestMerge(t *testing.T) {
	a := []model.CompileEntry{entry("/p", "a.c", "1")}
	b := []model.CompileEntry{entry("/p", "a.c", "2"), entry("/p", "b.c", "3")}
	c := []model.CompileEntry{entry("/q", "c.c", "4")}

	got := Merge(a, b, c)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"1", "2", "3", "4"}, commands(got))
}

func TestMerge_NoSources(t *testing.T) {
	got := Merge(nil)
	assert.Empty(t, got)
}

func commands(entries []model.CompileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Command
	}
	return out
}

func TestDeduplicate_Policies(t *testing.T) {
	input := func() []model.CompileEntry {
		return []model.CompileEntry{
			entry("/p", "x.cpp", "first"),
			entry("/p", "x.cpp", "second"),
		}
	}

	got := Deduplicate(input(), model.PolicyRetainFirst)
	assert.Equal(t, []model.CompileEntry{entry("/p", "x.cpp", "first")}, got)

	got = Deduplicate(input(), model.PolicyRetainLast)
	assert.Equal(t, []model.CompileEntry{entry("/p", "x.cpp", "second")}, got)

	got = Deduplicate(input(), model.PolicyKeep)
	assert.Equal(t, input(), got)
}

func TestDeduplicate_Order(t *testing.T) {
	input := func() []model.CompileEntry {
		return []model.CompileEntry{
			entry("/p", "a.c", "a1"),
			entry("/p", "b.c", "b1"),
			entry("/p", "a.c", "a2"),
			entry("/p", "c.c", "c1"),
			entry("/p", "b.c", "b2"),
			entry("/p", "a.c", "a3"),
		}
	}

	assert.Equal(t, []string{"a1", "b1", "c1"}, commands(Deduplicate(input(), model.PolicyRetainFirst)))
	assert.Equal(t, []string{"c1", "b2", "a3"}, commands(Deduplicate(input(), model.PolicyRetainLast)))
	assert.Equal(t, []string{"a1", "b1", "a2", "c1", "b2", "a3"}, commands(Deduplicate(input(), model.PolicyKeep)))
}

// The key is directory+file without a separator, so these two collide.
func TestDeduplicate_KeyConcatenationCollision(t *testing.T) {
	input := []model.CompileEntry{
		entry("/a/b", "/c.cpp", "one"),
		entry("/a/b/", "c.cpp", "two"),
	}
	got := Deduplicate(input, model.PolicyRetainFirst)
	assert.Equal(t, []string{"one"}, commands(got))
}

func TestFilterIgnored(t *testing.T) {
	tests := []struct {
		pattern string
		kept    bool
	}{
		{"gen/", false},
		{"^gen/", true},
		{"^/p/gen/", false},
		{`\.cpp$`, false},
		{"other", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			rs, err := rewrite.Compile(&model.Rules{IgnoreFiles: []string{tt.pattern}})
			require.NoError(t, err)
			got := FilterIgnored([]model.CompileEntry{entry("/p", "gen/x.cpp", "")}, rs)
			assert.Equal(t, tt.kept, len(got) == 1)
		})
	}
}

func TestFilterIgnored_NoPatterns(t *testing.T) {
	in := []model.CompileEntry{entry("/p", "a.c", "")}
	assert.Equal(t, in, FilterIgnored(in, nil))

	rs, err := rewrite.Compile(&model.Rules{})
	require.NoError(t, err)
	assert.Equal(t, in, FilterIgnored(in, rs))
}

func TestFilterIgnored_PreservesOrder(t *testing.T) {
	rs, err := rewrite.Compile(&model.Rules{IgnoreFiles: []string{"skip", "third_party"}})
	require.NoError(t, err)
	in := []model.CompileEntry{
		entry("/p", "a.c", "a"),
		entry("/p", "skip.c", "s"),
		entry("/p/third_party", "t.c", "t"),
		entry("/p", "b.c", "b"),
	}
	assert.Equal(t, []string{"a", "b"}, commands(FilterIgnored(in, rs)))
}

func TestFilterExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.cpp"), nil, 0o644))

	in := []model.CompileEntry{
		entry(dir, "real.cpp", "real"),
		entry(dir, "ghost.cpp", "ghost"),
	}
	assert.Equal(t, []string{"real"}, commands(FilterExisting(in)))
}
