// Package infer aggregates templates and affixes over a harvested token
// set and ranks them by frequency.
//
// Harvested tokens from the same site or campaign typically share one
// generation scheme: fixed length, fixed character classes, a brand
// prefix or suffix. Frequency ranking surfaces the dominant scheme
// without a human inspecting every token.
package infer

import (
	"sort"

	"github.com/cognicore/promoforge/pkg/promoforge/pattern"
)

// affixWindows are the candidate prefix/suffix lengths. All windows are
// counted simultaneously; picking one is a caller policy.
var affixWindows = [...]int{2, 3, 4, 5}

// Default top-K cutoffs for the ranked views.
const (
	DefaultTopTemplates = 8
	DefaultTopAffixes   = 4
)

// Entry is one ranked value with its observation count.
type Entry struct {
	Value string
	Count int
}

// Result holds the three independent rankings produced by Infer, each
// truncated to its top-K view and sorted by descending count with
// first-seen order breaking ties.
type Result struct {
	Templates []Entry
	Prefixes  []Entry
	Suffixes  []Entry
}

// TopTemplate returns the highest-ranked template, or "" when no tokens
// were seen.
func (r Result) TopTemplate() string {
	if len(r.Templates) == 0 {
		return ""
	}
	return r.Templates[0].Value
}

// TopPrefix returns the highest-ranked prefix regardless of window
// length, or "".
func (r Result) TopPrefix() string {
	if len(r.Prefixes) == 0 {
		return ""
	}
	return r.Prefixes[0].Value
}

// TopSuffix returns the highest-ranked suffix regardless of window
// length, or "".
func (r Result) TopSuffix() string {
	if len(r.Suffixes) == 0 {
		return ""
	}
	return r.Suffixes[0].Value
}

// counter maintains frequencies plus first-seen order so that ranking
// ties resolve deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(v string) {
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

// top returns the k most frequent values. Sorting is stable over the
// first-seen order, so equal counts keep their insertion order.
func (c *counter) top(k int) []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, v := range c.order {
		entries = append(entries, Entry{Value: v, Count: c.counts[v]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if k >= 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// Inferencer controls the top-K cutoffs of the ranked views.
type Inferencer struct {
	TopTemplates int
	TopAffixes   int
}

// New returns an Inferencer with the default cutoffs.
func New() Inferencer {
	return Inferencer{TopTemplates: DefaultTopTemplates, TopAffixes: DefaultTopAffixes}
}

// Infer classifies every token, counts its template, and counts its
// prefixes and suffixes for every window length the token can support
// (len(token) > n+1). An empty token sequence yields empty rankings.
func (inf Inferencer) Infer(tokens []string) Result {
	templates := newCounter()
	prefixes := newCounter()
	suffixes := newCounter()

	for _, tok := range tokens {
		tmpl, err := pattern.Classify(tok)
		if err != nil {
			continue
		}
		templates.add(tmpl)

		runes := []rune(tok)
		for _, n := range affixWindows {
			if len(runes) > n+1 {
				prefixes.add(string(runes[:n]))
				suffixes.add(string(runes[len(runes)-n:]))
			}
		}
	}

	return Result{
		Templates: templates.top(inf.TopTemplates),
		Prefixes:  prefixes.top(inf.TopAffixes),
		Suffixes:  suffixes.top(inf.TopAffixes),
	}
}

// Infer runs template inference with the default cutoffs.
func Infer(tokens []string) Result {
	return New().Infer(tokens)
}
