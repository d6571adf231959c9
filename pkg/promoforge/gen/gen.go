// Package gen synthesizes sample codes from character-class templates.
//
// Every generated code carries a mandatory trailing marker so that a
// synthetic code can never be mistaken for a harvested one. That marker
// is the single hard invariant of this package.
package gen

import (
	"math/rand"
	"strings"

	"github.com/cognicore/promoforge/pkg/promoforge/internalerr"
	"github.com/cognicore/promoforge/pkg/promoforge/pattern"
)

// Character pools per template class.
const (
	upperPool = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerPool = "abcdefghijklmnopqrstuvwxyz"
	digitPool = "0123456789"

	// DefaultSymbols is the default pool for the symbol class.
	DefaultSymbols = "!@#$%&*"

	// DefaultMarker tags synthetic codes. Never emitted empty: an empty
	// marker option falls back to this value.
	DefaultMarker = "-TEST"
)

// Options controls one generation call. Prefix and suffix are
// concatenated verbatim, unvalidated against the template. An empty
// Symbols or Marker falls back to the package default.
type Options struct {
	Prefix  string
	Suffix  string
	Marker  string
	Symbols string
}

// Generator draws template characters from an injected random source,
// so tests can seed it and assert exact output. The zero value is not
// usable; construct with New.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator backed by the given random source.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate synthesizes one code from the template: 'L' draws an
// uppercase letter, 'l' a lowercase letter, 'D' a digit, 'S' a symbol
// from the symbol pool; any other template character is emitted
// verbatim (no randomization for that position). An empty template is
// a caller defect.
func (g *Generator) Generate(template string, opts Options) (string, error) {
	if template == "" {
		return "", internalerr.ErrInvalidInput
	}

	symbols := opts.Symbols
	if symbols == "" {
		symbols = DefaultSymbols
	}
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	var b strings.Builder
	b.Grow(len(opts.Prefix) + len(template) + len(opts.Suffix) + len(marker))
	b.WriteString(opts.Prefix)
	for _, cls := range template {
		switch cls {
		case pattern.ClassUpper:
			b.WriteByte(upperPool[g.rng.Intn(len(upperPool))])
		case pattern.ClassLower:
			b.WriteByte(lowerPool[g.rng.Intn(len(lowerPool))])
		case pattern.ClassDigit:
			b.WriteByte(digitPool[g.rng.Intn(len(digitPool))])
		case pattern.ClassSymbol:
			runes := []rune(symbols)
			b.WriteRune(runes[g.rng.Intn(len(runes))])
		default:
			b.WriteRune(cls)
		}
	}
	b.WriteString(opts.Suffix)
	b.WriteString(marker)
	return b.String(), nil
}

// GenerateBatch produces n independent codes from the same template and
// options. No uniqueness is enforced across draws; duplicates are
// legitimate. n <= 0 yields an empty slice, not an error.
func (g *Generator) GenerateBatch(template string, n int, opts Options) ([]string, error) {
	if template == "" {
		return nil, internalerr.ErrInvalidInput
	}
	if n <= 0 {
		return []string{}, nil
	}

	codes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		code, err := g.Generate(template, opts)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}
