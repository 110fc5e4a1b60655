package clk

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Fold XOR-folds v the given number of times.
//
// Each fold XORs the first half of the current vector with the second half,
// so bit i of the result is v[i] ^ v[i+len/2]. Every step needs an even
// input length; if any step would see an odd length Fold returns ErrFold and
// no vector. v itself is never modified, and zero folds returns a copy.
func Fold(v *bitset.BitSet, folds int) (*bitset.BitSet, error) {
	if folds < 0 {
		return nil, fmt.Errorf("%w: negative fold count %d", ErrFold, folds)
	}

	// Check every step up front so nothing is computed for an invalid request.
	n := v.Len()
	for step := 1; step <= folds; step++ {
		if n%2 != 0 {
			return nil, fmt.Errorf("%w: fold %d of %d needs an even length, got %d", ErrFold, step, folds, n)
		}
		n /= 2
	}

	cur := v.Clone()
	for range folds {
		cur = foldOnce(cur)
	}
	return cur, nil
}

// foldOnce halves an even-length vector.
func foldOnce(v *bitset.BitSet) *bitset.BitSet {
	half := v.Len() / 2
	out := bitset.New(half)
	for i, ok := v.NextSet(0); ok && i < v.Len(); i, ok = v.NextSet(i + 1) {
		out.Flip(i % half)
	}
	return out
}
