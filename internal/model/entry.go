package model

// CompileEntry is one record of a compile_commands.json database.
type CompileEntry struct {
	Command   string   `json:"command"`   // Full shell-style invocation, may be empty
	Arguments []string `json:"arguments"` // Tokenized invocation, authoritative once set
	Directory string   `json:"directory"` // Working directory of the compiler
	File      string   `json:"file"`      // Source file, usually relative to Directory
	Output    string   `json:"output"`    // Build artifact, carried through unchanged
}

// Key identifies an entry for deduplication.
//
// The directory and file are concatenated without a separator, so "/a/b"+"c.cpp"
// and "/a/bc"+".cpp" share a key. Existing databases rely on this, keep it.
func (e CompileEntry) Key() string {
	return e.Directory + e.File
}

// FullPath is the path used for ignore matching, listing and lookups.
func (e CompileEntry) FullPath() string {
	return e.Directory + "/" + e.File
}
