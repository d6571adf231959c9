// Package extract pulls code-like tokens out of raw text fragments.
//
// The extractor is deliberately over-inclusive: ordinary words that happen
// to match a shape rule are kept, and it is up to downstream ranking or
// manual review to discard noise.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// minTokenLen is the shortest match kept after trimming.
const minTokenLen = 4

// Rules is an immutable set of token shape rules. Each rule scans a
// fragment independently; a fragment can contribute duplicate or
// overlapping matches across rules, deduplicated into the result set.
type Rules struct {
	patterns []*regexp.Regexp
}

// DefaultRules returns the built-in shape rules: all-uppercase
// alphanumeric runs, mixed-case alphanumeric runs, and hyphen-segmented
// uppercase groups.
func DefaultRules() Rules {
	return Rules{patterns: []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z0-9]{4,20}\b`),
		regexp.MustCompile(`\b[A-Za-z0-9]{4,20}\b`),
		regexp.MustCompile(`\b[A-Z0-9]{2,6}(?:-[A-Z0-9]{2,6})+\b`),
	}}
}

// NewRules builds a rule set from the given patterns. Useful for tests
// and callers that want a narrower or wider net than DefaultRules.
func NewRules(patterns ...*regexp.Regexp) Rules {
	ps := make([]*regexp.Regexp, len(patterns))
	copy(ps, patterns)
	return Rules{patterns: ps}
}

// Extract scans every fragment with every rule and returns the unique
// matches of length >= 4, sorted for deterministic output. Fragments
// without matches contribute nothing; the result is never nil.
func (r Rules) Extract(fragments []string) []string {
	seen := make(map[string]struct{})
	for _, frag := range fragments {
		if frag == "" {
			continue
		}
		for _, rx := range r.patterns {
			for _, m := range rx.FindAllString(frag, -1) {
				m = strings.TrimSpace(m)
				if len(m) >= minTokenLen {
					seen[m] = struct{}{}
				}
			}
		}
	}

	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// Extract applies the default rules. See Rules.Extract.
func Extract(fragments []string) []string {
	return DefaultRules().Extract(fragments)
}
