// Package pattern maps code-like tokens to character-class templates.
//
// A template describes a token position by position: 'L' for an uppercase
// letter, 'l' for a lowercase letter, 'D' for a digit and 'S' for anything
// else (punctuation, hyphens, whitespace). Two tokens with the same
// case/digit structure always produce the same template, which makes the
// template a usable fingerprint for the generation scheme behind a batch
// of harvested codes.
package pattern

import (
	"strings"
	"unicode"

	"github.com/cognicore/promoforge/pkg/promoforge/internalerr"
)

// Template class characters.
const (
	ClassUpper  = 'L'
	ClassLower  = 'l'
	ClassDigit  = 'D'
	ClassSymbol = 'S'
)

// Classify projects a token onto its character-class template.
// The result has the same rune length as the token and is a pure
// function of its input.
func Classify(token string) (string, error) {
	if token == "" {
		return "", internalerr.ErrInvalidInput
	}

	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		b.WriteRune(classOf(r))
	}
	return b.String(), nil
}

// classOf buckets a single rune. Every non-alphanumeric rune lands in the
// symbol class; there is no literal pass-through at classification time.
func classOf(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return ClassUpper
	case unicode.IsLower(r):
		return ClassLower
	case unicode.IsDigit(r):
		return ClassDigit
	default:
		return ClassSymbol
	}
}
