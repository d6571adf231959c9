// Package collect turns raw HTML into candidate text fragments for the
// token extractor.
//
// A fragment can be a visible text node, an attribute value, meta
// content, a JSON-LD payload or an inline script body. The extractor
// treats every fragment as opaque text; this package only decides which
// parts of a page are worth scanning.
package collect

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultHintWords flag text that likely surrounds a promotional code.
// Matching is case-insensitive substring matching.
var DefaultHintWords = []string{
	"coupon", "promo", "promocode", "promo code", "code:", "code ",
	"cupón", "cupon", "codigo", "código", "voucher", "discount", "offer",
}

// Visible text this short is kept even without a hint word; codes are
// often rendered as standalone short snippets.
const shortTextLimit = 60

// Inline script bodies are truncated before scanning.
const (
	hintedScriptLimit = 400
	plainScriptLimit  = 200
)

// candidateAttrs are element attributes whose values are scanned.
var candidateAttrs = []string{"data-coupon", "data-code", "value", "title", "alt", "aria-label"}

// classHintRE flags elements whose class attribute suggests coupon
// content.
var classHintRE = regexp.MustCompile(`(?i)coupon|promo|code|voucher|offer`)

// Hints is an immutable hint-word matcher.
type Hints struct {
	words []string
}

// NewHints builds a matcher from the given words, lowercased.
func NewHints(words []string) Hints {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			lowered = append(lowered, strings.ToLower(w))
		}
	}
	return Hints{words: lowered}
}

// Match reports whether the text contains any hint word.
func (h Hints) Match(text string) bool {
	lowered := strings.ToLower(text)
	for _, w := range h.words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

// Collector extracts candidate fragments from parsed documents.
type Collector struct {
	hints Hints
}

// New creates a Collector with the given hint words; nil falls back to
// DefaultHintWords.
func New(hintWords []string) *Collector {
	if hintWords == nil {
		hintWords = DefaultHintWords
	}
	return &Collector{hints: NewHints(hintWords)}
}

// Fragments parses the HTML source and returns candidate fragments in
// document order: visible text, attribute values, hinted-class element
// text, meta content, JSON-LD payloads and inline script bodies.
func (c *Collector) Fragments(htmlSrc string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, err
	}

	var fragments []string

	// 1. Visible text nodes, short or hinted.
	for _, node := range doc.Nodes {
		fragments = append(fragments, c.visibleText(node)...)
	}

	// 2. Attribute values and hinted-class element text.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range candidateAttrs {
			if v, ok := s.Attr(attr); ok {
				fragments = append(fragments, v)
			}
		}
		if cls, ok := s.Attr("class"); ok && classHintRE.MatchString(cls) {
			fragments = append(fragments, strings.TrimSpace(s.Text()))
		}
	})

	// 3. Meta content.
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("content"); ok {
			fragments = append(fragments, v)
		}
	})

	// 4. JSON-LD payloads, re-serialized when they parse.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		fragments = append(fragments, normalizeJSONLD(s.Text()))
	})

	// 5. Inline scripts, truncated. Hinted scripts get a wider window.
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("src"); ok {
			return
		}
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		limit := plainScriptLimit
		if c.hints.Match(body) {
			limit = hintedScriptLimit
		}
		fragments = append(fragments, truncate(body, limit))
	})

	return fragments, nil
}

// visibleText walks the node tree collecting text nodes outside of
// script and style elements. Text is kept when it is short or contains
// a hint word.
func (c *Collector) visibleText(n *html.Node) []string {
	var out []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			txt := strings.TrimSpace(n.Data)
			if txt != "" && (len(txt) <= shortTextLimit || c.hints.Match(txt)) {
				out = append(out, txt)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return out
}

// normalizeJSONLD re-serializes valid JSON so embedded values surface as
// plain text; invalid payloads pass through untouched.
func normalizeJSONLD(raw string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	normalized, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return string(normalized)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
