package pattern

import (
	"errors"
	"testing"
	"unicode"

	"github.com/cognicore/promoforge/pkg/promoforge/internalerr"
)

func TestClassifyBasic(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{"SAVE20", "LLLLDD"},
		{"ab12", "llDD"},
		{"SAVE20-NOW", "LLLLDDSLLL"},
		{"X9!z", "LDSl"},
		{"----", "SSSS"},
	}

	for _, c := range cases {
		got, err := Classify(c.token)
		if err != nil {
			t.Fatalf("Classify(%q) returned error: %v", c.token, err)
		}
		if got != c.want {
			t.Errorf("Classify(%q) = %q, want %q", c.token, got, c.want)
		}
	}
}

func TestClassifyEmptyToken(t *testing.T) {
	_, err := Classify("")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Classify(\"\") error = %v, want ErrInvalidInput", err)
	}
}

func TestClassifyLengthAndDeterminism(t *testing.T) {
	tokens := []string{"PROMO2024", "x", "AB-12-cd", "Voucher99", "ÜBER20"}

	for _, tok := range tokens {
		first, err := Classify(tok)
		if err != nil {
			t.Fatalf("Classify(%q) returned error: %v", tok, err)
		}
		if len([]rune(first)) != len([]rune(tok)) {
			t.Errorf("Classify(%q) length = %d, want %d", tok, len([]rune(first)), len([]rune(tok)))
		}

		second, _ := Classify(tok)
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %q vs %q", tok, first, second)
		}
	}
}

func TestClassifyPerIndexClasses(t *testing.T) {
	tok := "Ab3-Ab3!"
	tmpl, err := Classify(tok)
	if err != nil {
		t.Fatal(err)
	}

	runes := []rune(tok)
	for i, cls := range []rune(tmpl) {
		r := runes[i]
		switch cls {
		case ClassUpper:
			if !unicode.IsUpper(r) {
				t.Errorf("index %d: class L but rune %q not upper", i, r)
			}
		case ClassLower:
			if !unicode.IsLower(r) {
				t.Errorf("index %d: class l but rune %q not lower", i, r)
			}
		case ClassDigit:
			if !unicode.IsDigit(r) {
				t.Errorf("index %d: class D but rune %q not digit", i, r)
			}
		case ClassSymbol:
			if unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsDigit(r) {
				t.Errorf("index %d: class S but rune %q is alphanumeric", i, r)
			}
		default:
			t.Errorf("index %d: unexpected class %q", i, cls)
		}
	}
}
