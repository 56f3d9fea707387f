package model

import (
	"errors"
	"fmt"
)

// Rules is the postprocess configuration as read from disk.
type Rules struct {
	Remove      []string `json:"remove" yaml:"remove"`             // Regexes, matching tokens are dropped
	Insert      []string `json:"insert" yaml:"insert"`             // Tokens placed right after the compiler
	Replace     []string `json:"replace" yaml:"replace"`           // "from,to" literal substring rules
	IgnoreFiles []string `json:"ignore_files" yaml:"ignore_files"` // Regexes over directory + "/" + file
}

// DedupPolicy selects how entries sharing a key are reconciled.
type DedupPolicy string

const (
	PolicyKeep        DedupPolicy = "keep"
	PolicyRetainFirst DedupPolicy = "retain_first"
	PolicyRetainLast  DedupPolicy = "retain_last"
)

// ErrUnknownPolicy is returned for a policy name outside the known set.
var ErrUnknownPolicy = errors.New("unknown duplicate policy")

// ParseDedupPolicy maps a flag value onto a DedupPolicy.
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch p := DedupPolicy(s); p {
	case PolicyKeep, PolicyRetainFirst, PolicyRetainLast:
		return p, nil
	}
	return "", fmt.Errorf("%w %q (want keep, retain_first or retain_last)", ErrUnknownPolicy, s)
}
