package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// tagToken is the only accepted tag grammar: letters, digits, underscore,
// hyphen. Matching is case-sensitive.
var tagToken = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// TagSet is the outcome of normalizing a raw model-proposed tag list.
// Valid holds the deduplicated accepted names; Invalid holds rejected
// entries stringified for diagnostics. Whitespace-only strings land in
// neither set.
type TagSet struct {
	Valid   []string `json:"valid"`
	Invalid []string `json:"invalid"`
}

// NormalizeTags validates a raw tag list as returned by the model.
// Non-strings are rejected, strings are trimmed, empties dropped silently,
// survivors must match the token grammar, and the remainder is
// deduplicated. Normalizing an already-normalized list is a no-op.
func NormalizeTags(raw []interface{}) TagSet {
	out := TagSet{
		Valid:   []string{},
		Invalid: []string{},
	}
	seen := make(map[string]bool)

	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			out.Invalid = append(out.Invalid, fmt.Sprintf("%v", item))
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !tagToken.MatchString(s) {
			out.Invalid = append(out.Invalid, s)
			continue
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out.Valid = append(out.Valid, s)
	}

	return out
}

// ValidTagName reports whether name satisfies the tag token grammar.
func ValidTagName(name string) bool {
	return tagToken.MatchString(name)
}

// DiffTagNames computes the symmetric difference between the tag names a
// thought currently carries and the normalized set it should carry.
func DiffTagNames(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]bool, len(current))
	for _, name := range current {
		currentSet[name] = true
	}
	desiredSet := make(map[string]bool, len(desired))
	for _, name := range desired {
		desiredSet[name] = true
	}

	for _, name := range desired {
		if !currentSet[name] {
			toAdd = append(toAdd, name)
		}
	}
	for _, name := range current {
		if !desiredSet[name] {
			toRemove = append(toRemove, name)
		}
	}
	return toAdd, toRemove
}
