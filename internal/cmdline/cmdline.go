// Package cmdline converts between a compile command string and its tokens.
//
// Splitting is deliberately naive: commands are split on single spaces with no
// shell quote handling. The only quoting the package knows about is the
// single-quoted value of a -D macro definition.
package cmdline

import "strings"

// Tokenize splits a command on every space. Consecutive spaces yield empty tokens.
func Tokenize(command string) []string {
	return strings.Split(command, " ")
}

// Join rebuilds a command line, single quoting -D values that contain a space.
func Join(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		name, value, ok := splitMacro(tok)
		if ok && strings.Contains(tok, " ") {
			parts[i] = name + "='" + value + "'"
			continue
		}
		parts[i] = tok
	}
	return strings.Join(parts, " ")
}

// StripMacroQuotes rewrites -DNAME='value' to -DNAME=value in place and returns tokens.
func StripMacroQuotes(tokens []string) []string {
	for i, tok := range tokens {
		if !isQuotedMacro(tok) {
			continue
		}
		name, value, _ := splitMacro(tok)
		tokens[i] = name + "=" + value[1:len(value)-1]
	}
	return tokens
}

// splitMacro splits -DNAME=value. It requires exactly one '=' and a value of
// at least two bytes.
func splitMacro(tok string) (name, value string, ok bool) {
	if !strings.HasPrefix(tok, "-D") || strings.Count(tok, "=") != 1 {
		return "", "", false
	}
	name, value, _ = strings.Cut(tok, "=")
	if len(value) < 2 {
		return "", "", false
	}
	return name, value, true
}

func isQuotedMacro(tok string) bool {
	_, value, ok := splitMacro(tok)
	return ok && value[0] == '\'' && value[len(value)-1] == '\''
}
