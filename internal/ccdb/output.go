package ccdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"ccjpost/internal/model"
)

// Dump writes entries as a JSON array, one pretty-printed object at a time:
//
//	[
//	{...}
//	,
//	{...}
//	]
//
// Everything is rendered before the first byte reaches w, so a failure leaves
// no partial output. An empty database is written as "[\n]\n".
func Dump(w io.Writer, entries []model.CompileEntry) error {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",\n")
		}
		b, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return fmt.Errorf("encode entry %s: %w", e.FullPath(), err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	_, err := buf.WriteTo(w)
	return err
}

// ListFiles writes the full path of every entry, one per line.
func ListFiles(w io.Writer, entries []model.CompileEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.FullPath()); err != nil {
			return err
		}
	}
	return nil
}

// FindCommands returns the entries whose file or full path equals one of files.
// Results follow database order.
func FindCommands(entries []model.CompileEntry, files []string) []model.CompileEntry {
	want := make(map[string]struct{}, len(files))
	for _, f := range files {
		want[f] = struct{}{}
	}
	var found []model.CompileEntry
	for _, e := range entries {
		_, byFile := want[e.File]
		_, byPath := want[e.FullPath()]
		if byFile || byPath {
			found = append(found, e)
		}
	}
	return found
}

// WriteCommands prints "directory, command" for each entry.
func WriteCommands(w io.Writer, entries []model.CompileEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s, %s\n", e.Directory, e.Command); err != nil {
			return err
		}
	}
	return nil
}

// CppSources returns the full paths of entries with a C/C++ source extension.
func CppSources(entries []model.CompileEntry) []string {
	var paths []string
	for _, e := range entries {
		if model.IsCppSource(e.File) {
			paths = append(paths, e.FullPath())
		}
	}
	return paths
}
