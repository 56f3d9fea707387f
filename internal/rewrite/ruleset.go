// Package rewrite implements the per-entry command line rewriting pipeline.
//
// Each pass is a plain function over a token slice; RuleSet.Postprocess runs
// them in a fixed order:
//
//	dedup -> include paths -> remove -> replace -> insert -> dedup -> strip quotes -> join
package rewrite

import (
	"fmt"
	"regexp"

	"ccjpost/internal/cmdline"
	"ccjpost/internal/model"
)

// RuleSet is a compiled model.Rules. It is immutable after Compile and safe to
// share between goroutines. A nil *RuleSet rewrites nothing beyond the fixed passes.
type RuleSet struct {
	remove       []*regexp.Regexp
	replacements []Replacement
	insert       []string
	ignore       []*regexp.Regexp

	// Skipped holds replace rules that did not split into exactly two parts.
	Skipped []string
}

// Compile prepares rules for use. An invalid regular expression is an error.
func Compile(rules *model.Rules) (*RuleSet, error) {
	if rules == nil {
		return nil, nil
	}
	rs := &RuleSet{
		insert: append([]string(nil), rules.Insert...),
	}

	var err error
	if rs.remove, err = compileAll("remove", rules.Remove); err != nil {
		return nil, err
	}
	if rs.ignore, err = compileAll("ignore_files", rules.IgnoreFiles); err != nil {
		return nil, err
	}

	for _, r := range rules.Replace {
		rep, ok := ParseReplacement(r)
		if !ok {
			rs.Skipped = append(rs.Skipped, r)
			continue
		}
		rs.replacements = append(rs.replacements, rep)
	}
	return rs, nil
}

func compileAll(field string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", field, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// HasIgnore reports whether any ignore_files pattern is configured.
func (rs *RuleSet) HasIgnore() bool {
	return rs != nil && len(rs.ignore) > 0
}

// Ignored reports whether fullPath matches an ignore_files pattern.
func (rs *RuleSet) Ignored(fullPath string) bool {
	if rs == nil {
		return false
	}
	return matchAny(rs.ignore, fullPath)
}

// Rewrite runs the token passes for an entry compiled in directory.
func (rs *RuleSet) Rewrite(tokens []string, directory string) []string {
	var (
		remove       []*regexp.Regexp
		replacements []Replacement
		insert       []string
	)
	if rs != nil {
		remove, replacements, insert = rs.remove, rs.replacements, rs.insert
	}

	tokens = Dedup(tokens)
	tokens = NormalizeIncludePaths(tokens, directory)
	tokens = Remove(tokens, remove)
	tokens = Replace(tokens, replacements)
	tokens = Insert(tokens, insert)
	tokens = Dedup(tokens)
	return cmdline.StripMacroQuotes(tokens)
}

// Postprocess rewrites entry in place. Arguments are derived from Command only
// when empty, and Command is regenerated from the rewritten Arguments.
func (rs *RuleSet) Postprocess(entry *model.CompileEntry) {
	if len(entry.Arguments) == 0 {
		entry.Arguments = cmdline.Tokenize(entry.Command)
	}
	entry.Arguments = rs.Rewrite(entry.Arguments, entry.Directory)
	entry.Command = cmdline.Join(entry.Arguments)
}
