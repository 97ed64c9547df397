// Package shingle produces overlapping k-token windows from a token stream
// and maps each window to a Rabin-Karp polynomial hash. The hash sequence is
// computed incrementally: sliding the window by one token updates the
// previous hash in O(1) instead of re-evaluating the polynomial.
package shingle

import (
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/token"
)

// DefaultK is the default shingle width in tokens.
const DefaultK = 5

// Base is the polynomial base B. Hashes are evaluated as
// sum(v_i * B^(k-1-i)) mod token.HashMod.
const Base uint64 = 257

// Mod is the hash modulus P, re-exported from the token encoding so both
// stages agree on the value space [0, P).
const Mod = token.HashMod

// Shingle is one k-token window. Start is the index of its first token in
// the file's token stream, which equals the shingle's position in the
// shingle sequence.
type Shingle struct {
	Start  int
	Tokens []token.Token
}

// Cut slices a token stream into overlapping windows of exactly k tokens,
// stepping by one. Fewer than k tokens yields an empty sequence; the count
// is always max(0, len(tokens)-k+1).
func Cut(tokens []token.Token, k int) []Shingle {
	if k < 1 || len(tokens) < k {
		return nil
	}
	shingles := make([]Shingle, 0, len(tokens)-k+1)
	for i := 0; i+k <= len(tokens); i++ {
		shingles = append(shingles, Shingle{Start: i, Tokens: tokens[i : i+k]})
	}
	return shingles
}

// Hash evaluates the polynomial hash of a single shingle from scratch. This
// is the reference definition that the rolling update in HashAll must match
// bit for bit.
func Hash(s Shingle) uint64 {
	var h uint64
	for _, t := range s.Tokens {
		h = (h*Base + t.Value()) % Mod
	}
	return h
}

// HashAll computes the hash of every k-shingle of the token stream using the
// rolling update: drop the leading token's weighted contribution, shift by
// the base, add the trailing token. Element i is the hash of the shingle
// starting at token i. Equal token streams always produce equal sequences.
func HashAll(tokens []token.Token, k int) []uint64 {
	n := len(tokens)
	if k < 1 || n < k {
		return nil
	}

	values := make([]uint64, n)
	for i, t := range tokens {
		values[i] = t.Value()
	}

	// B^(k-1) mod P, the weight of the leading token.
	lead := uint64(1)
	for i := 0; i < k-1; i++ {
		lead = (lead * Base) % Mod
	}

	hashes := make([]uint64, 0, n-k+1)
	var h uint64
	for i := 0; i < k; i++ {
		h = (h*Base + values[i]) % Mod
	}
	hashes = append(hashes, h)

	for i := 1; i+k <= n; i++ {
		drop := (values[i-1] * lead) % Mod
		h = (h + Mod - drop) % Mod
		h = (h*Base + values[i+k-1]) % Mod
		hashes = append(hashes, h)
	}

	return hashes
}
