package extract

import (
	"reflect"
	"regexp"
	"sort"
	"testing"
)

func TestExtractHyphenSegmented(t *testing.T) {
	tokens := Extract([]string{"Use code SAVE20-NOW for 10% off"})

	found := false
	for _, tok := range tokens {
		if tok == "SAVE20-NOW" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Extract did not yield SAVE20-NOW, got %v", tokens)
	}
}

func TestExtractNoMatches(t *testing.T) {
	tokens := Extract([]string{"hi to us", ""})
	if len(tokens) != 0 {
		t.Errorf("expected empty result, got %v", tokens)
	}
}

func TestExtractDeduplicatesAcrossRulesAndFragments(t *testing.T) {
	// PROMO99 matches both the uppercase rule and the mixed-case rule,
	// and appears in two fragments.
	tokens := Extract([]string{
		"coupon PROMO99 today",
		"again: PROMO99",
	})

	count := 0
	for _, tok := range tokens {
		if tok == "PROMO99" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("PROMO99 should appear exactly once, got %d in %v", count, tokens)
	}
}

func TestExtractSortedOutput(t *testing.T) {
	tokens := Extract([]string{"ZETA1 then ALFA2 then MIKE3"})
	if !sort.StringsAreSorted(tokens) {
		t.Errorf("tokens not sorted: %v", tokens)
	}
}

func TestExtractMinLength(t *testing.T) {
	// "ABC" is below the minimum kept length even though a narrower
	// custom rule matches it.
	rules := NewRules(regexp.MustCompile(`\b[A-Z0-9]{2,20}\b`))
	tokens := rules.Extract([]string{"ABC SAVE20"})

	want := []string{"SAVE20"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Extract = %v, want %v", tokens, want)
	}
}

func TestExtractMixedCase(t *testing.T) {
	tokens := Extract([]string{"try WeLcOmE5 at checkout"})

	found := false
	for _, tok := range tokens {
		if tok == "WeLcOmE5" {
			found = true
		}
	}
	if !found {
		t.Errorf("mixed-case rule missed WeLcOmE5, got %v", tokens)
	}
}

func TestExtractIdempotent(t *testing.T) {
	fragments := []string{"Use SAVE20-NOW or FALL2024 or code xyz789"}

	first := Extract(fragments)
	second := Extract(fragments)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent: %v vs %v", first, second)
	}
}
