package clk

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Encoder turns records into CLK bit vectors.
//
// An Encoder holds the schema and key list of one run. Both are read-only,
// so a single Encoder is safe for concurrent use by multiple goroutines.
type Encoder struct {
	schema *Schema
	keys   KeyList
}

// NewEncoder creates an Encoder for schema using keys, which must hold one
// KeyPair per schema field.
func NewEncoder(schema *Schema, keys KeyList) (*Encoder, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(keys) != len(schema.Fields) {
		return nil, fmt.Errorf("%w: %d key pairs for %d fields", ErrConfig, len(keys), len(schema.Fields))
	}
	return &Encoder{schema: schema, keys: keys}, nil
}

// Encode hashes row into an unfolded vector of schema.Length bits and
// returns it with its popcount.
//
// Each field's tokens set bits via double hashing under that field's key
// pair; fields only ever add bits, so the result is the union of all
// field contributions.
func (e *Encoder) Encode(row []string) (*bitset.BitSet, int, error) {
	if len(row) != len(e.schema.Fields) {
		return nil, 0, fmt.Errorf("%w: got %d values, expected %d", ErrRowLength, len(row), len(e.schema.Fields))
	}

	l := e.schema.Length
	v := bitset.New(l)
	for i, f := range e.schema.Fields {
		if f.Ignored || f.K == 0 {
			continue
		}
		for _, tok := range Tokenize(row[i], f.NGram, f.Positional) {
			for _, pos := range DoubleHashPositions([]byte(tok), e.keys[i], f.K, l) {
				v.Set(pos)
			}
		}
	}
	return v, int(v.Count()), nil
}

// EncodeFolded hashes row and applies the schema's XOR folds. The popcount
// is that of the folded vector.
func (e *Encoder) EncodeFolded(row []string) (*bitset.BitSet, int, error) {
	v, _, err := e.Encode(row)
	if err != nil {
		return nil, 0, err
	}
	folded, err := Fold(v, e.schema.XORFolds)
	if err != nil {
		return nil, 0, err
	}
	return folded, Popcount(folded), nil
}
