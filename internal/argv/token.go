// Package argv tokenizes utility arguments: tolerant flag prefixes,
// table-driven synonym lookup and the numeric operand grammar shared by
// every wintools utility.
package argv

import (
	"strings"

	"github.com/Norgate-AV/wintools/internal/apperr"
)

// PrefixChars are the characters that may introduce a flag.
const PrefixChars = `-\/=*+`

// MaxPrefix is how many leading prefix characters a flag may carry.
const MaxPrefix = 2

// Token is one argument. Index is its 1-based position in the argument list.
type Token struct {
	Raw    string
	Index  int
	Prefix int
	Name   string
}

// IsFlag reports whether the token started with a prefix character.
func (t Token) IsFlag() bool { return t.Prefix > 0 }

// IsBare reports whether the token carries no prefix.
func (t Token) IsBare() bool { return t.Prefix == 0 }

// Is reports whether the token is a flag whose name equals one of names.
func (t Token) Is(names ...string) bool {
	if !t.IsFlag() {
		return false
	}

	for _, n := range names {
		if EqualFold(t.Name, n) {
			return true
		}
	}

	return false
}

// CheckFlag verifies that a flag token has a usable name: not empty and not
// starting with a third prefix character.
func (t Token) CheckFlag() error {
	if !t.IsFlag() {
		return apperr.AtToken(apperr.KindArgument, t.Raw, t.Index, "unexpected argument")
	}

	if t.Name == "" || isPrefix(t.Name[0]) {
		return apperr.AtToken(apperr.KindArgument, t.Raw, t.Index, "malformed flag")
	}

	return nil
}

// Classify splits raw into prefix and name.
func Classify(raw string, index int) Token {
	n := 0
	for n < len(raw) && n < MaxPrefix && isPrefix(raw[n]) {
		n++
	}

	return Token{Raw: raw, Index: index, Prefix: n, Name: raw[n:]}
}

// Tokenize classifies every argument, keeping order.
func Tokenize(args []string) []Token {
	tokens := make([]Token, 0, len(args))
	for i, a := range args {
		tokens = append(tokens, Classify(a, i+1))
	}

	return tokens
}

// IsHelp reports whether the token requests usage (-h, --help in any case
// and with any accepted prefix).
func IsHelp(t Token) bool {
	return t.Is("h", "help")
}

func isPrefix(c byte) bool {
	return strings.IndexByte(PrefixChars, c) >= 0
}

// EqualFold compares two strings with ASCII-only case folding.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}
