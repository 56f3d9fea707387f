package ccdb

import (
	"slices"

	"ccjpost/internal/model"
	"ccjpost/internal/rewrite"
)

// Merge appends every source after primary, in order. Entries sharing a key
// are left for Deduplicate.
func Merge(primary []model.CompileEntry, sources ...[]model.CompileEntry) []model.CompileEntry {
	n := len(primary)
	for _, s := range sources {
		n += len(s)
	}
	out := make([]model.CompileEntry, 0, n)
	out = append(out, primary...)
	for _, s := range sources {
		out = append(out, s...)
	}
	return out
}

// Deduplicate reconciles entries sharing a Key according to policy. The
// backing array of entries is reused.
func Deduplicate(entries []model.CompileEntry, policy model.DedupPolicy) []model.CompileEntry {
	switch policy {
	case model.PolicyRetainFirst:
		return retainFirst(entries)
	case model.PolicyRetainLast:
		slices.Reverse(entries)
		entries = retainFirst(entries)
		slices.Reverse(entries)
		return entries
	default:
		return entries
	}
}

func retainFirst(entries []model.CompileEntry) []model.CompileEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		key := e.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// FilterIgnored drops entries whose full path matches an ignore_files pattern.
func FilterIgnored(entries []model.CompileEntry, rs *rewrite.RuleSet) []model.CompileEntry {
	if !rs.HasIgnore() {
		return entries
	}
	return slices.DeleteFunc(entries, func(e model.CompileEntry) bool {
		return rs.Ignored(e.FullPath())
	})
}

// FilterExisting drops entries whose source file is not on disk.
func FilterExisting(entries []model.CompileEntry) []model.CompileEntry {
	return slices.DeleteFunc(entries, func(e model.CompileEntry) bool {
		return !model.FileExists(e.FullPath())
	})
}
