package rewrite

import (
	"path"
	"regexp"
	"strings"
)

// Dedup keeps the first occurrence of every token.
func Dedup(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// NormalizeIncludePaths makes every -I<path> absolute, resolving relative paths
// against directory. Resolution is logical only; the filesystem is not consulted.
func NormalizeIncludePaths(tokens []string, directory string) []string {
	for i, tok := range tokens {
		if len(tok) <= 2 || !strings.HasPrefix(tok, "-I") {
			continue
		}
		dir := tok[2:]
		if !strings.HasPrefix(dir, "/") {
			dir = path.Join(directory, dir)
		}
		// path.Clean keeps at most one leading slash; add it when directory was relative.
		tokens[i] = "-I/" + strings.TrimPrefix(path.Clean(dir), "/")
	}
	return tokens
}

// Remove drops every token matched anywhere by one of the patterns.
func Remove(tokens []string, patterns []*regexp.Regexp) []string {
	if len(patterns) == 0 {
		return tokens
	}
	out := tokens[:0]
	for _, tok := range tokens {
		if matchAny(patterns, tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Replacement is one literal substring rule.
type Replacement struct {
	From string
	To   string
}

// ParseReplacement splits a "from,to" rule. Rules without exactly two parts are rejected.
func ParseReplacement(rule string) (Replacement, bool) {
	parts := strings.Split(rule, ",")
	if len(parts) != 2 {
		return Replacement{}, false
	}
	return Replacement{From: parts[0], To: parts[1]}, true
}

// Replace applies every replacement to every token, in order. A later rule sees
// the output of the earlier ones.
func Replace(tokens []string, replacements []Replacement) []string {
	for i := range tokens {
		for _, r := range replacements {
			tokens[i] = strings.ReplaceAll(tokens[i], r.From, r.To)
		}
	}
	return tokens
}

// Insert places inserts as one block right after the compiler token.
func Insert(tokens []string, inserts []string) []string {
	if len(inserts) == 0 {
		return tokens
	}
	if len(tokens) == 0 {
		return append([]string(nil), inserts...)
	}
	out := make([]string, 0, len(tokens)+len(inserts))
	out = append(out, tokens[0])
	out = append(out, inserts...)
	return append(out, tokens[1:]...)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
