package model

import (
	"os"
	"path/filepath"
	"strings"
)

// cppExtensions are the suffixes offered by the interactive picker.
var cppExtensions = []string{".cpp", ".cxx", ".cc", ".c++", ".C"}

// ExpandTilde expands a leading ~ to the user's home directory
func ExpandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			return home
		}
	}
	return path
}

// FileExists reports whether path names an existing file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsCppSource checks the file name against the C/C++ source extensions.
// The match is case sensitive: ".C" is C++, ".c" is not.
func IsCppSource(name string) bool {
	for _, ext := range cppExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
