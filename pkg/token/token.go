// Package token defines the normalized lexical unit produced by preprocessing
// and its deterministic numeric encoding used by the rolling hasher.
package token

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind classifies a token.
type Kind uint8

const (
	Identifier Kind = iota
	Keyword
	Number
	String
	Operator
	Punct
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Identifier:
		return "ident"
	case Keyword:
		return "keyword"
	case Number:
		return "number"
	case String:
		return "string"
	case Operator:
		return "operator"
	case Punct:
		return "punct"
	default:
		return "unknown"
	}
}

// Placeholder values after normalization. Identifiers, numeric literals and
// string literals collapse to these so that renaming does not change the
// token stream; keywords keep their literal text.
const (
	IDValue  = "ID"
	NumValue = "NUM"
	StrValue = "STR"
)

// Token is a normalized lexical unit. Text is the canonical value: a
// placeholder for identifiers/numbers/strings, the literal text otherwise.
type Token struct {
	Kind Kind
	Text string
}

// HashMod is the modulus for token values and shingle hashes: the Mersenne
// prime 2^31-1. All hashes live in [0, HashMod).
const HashMod uint64 = 2147483647

// Value maps the token to an integer in [0, HashMod) by hashing its kind and
// canonical text. The mapping is fixed: equal tokens always encode to the
// same value, across files and across runs.
func (t Token) Value() uint64 {
	return xxhash.Sum64String(t.Kind.String()+":"+t.Text) % HashMod
}

// Join renders a token stream as a single space-separated string. Used for
// content digests and debugging output.
func Join(tokens []Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}
