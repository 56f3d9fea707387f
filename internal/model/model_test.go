package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyAndFullPath(t *testing.T) {
	e := CompileEntry{Directory: "/a/b", File: "c.cpp"}
	assert.Equal(t, "/a/bc.cpp", e.Key())
	assert.Equal(t, "/a/b/c.cpp", e.FullPath())

	// Keys are a plain concatenation: these two name the same file.
	x := CompileEntry{Directory: "/a/b", File: "/c.cpp"}
	y := CompileEntry{Directory: "/a/b/", File: "c.cpp"}
	assert.Equal(t, x.Key(), y.Key())
}

func TestParseDedupPolicy(t *testing.T) {
	for _, s := range []string{"keep", "retain_first", "retain_last"} {
		p, err := ParseDedupPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, DedupPolicy(s), p)
	}

	_, err := ParseDedupPolicy("retain_middle")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "db.json"), ExpandTilde("~/db.json"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/abs/~/x", ExpandTilde("/abs/~/x"))
	assert.Equal(t, "~user/x", ExpandTilde("~user/x"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.True(t, FileExists(path))
	assert.True(t, FileExists(dir))
}

func TestIsCppSource(t *testing.T) {
	for _, name := range []string{"a.cpp", "a.cxx", "a.cc", "a.c++", "a.C", "dir/x.cpp"} {
		assert.True(t, IsCppSource(name), name)
	}
	for _, name := range []string{"a.c", "a.h", "a.hpp", "a.CPP", "cpp"} {
		assert.False(t, IsCppSource(name), name)
	}
}
