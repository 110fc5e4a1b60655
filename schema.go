package clk

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Field describes how one column of a record is hashed.
type Field struct {
	Name string
	// NGram is the token size the value is split into.
	NGram int
	// Positional prefixes each token with its position in the value.
	Positional bool
	// K is the number of bit positions set per token.
	K int
	// Ignored fields are neither validated nor hashed.
	Ignored bool
	// Constraint is a validator tag the value must satisfy when rows are
	// validated, e.g. "required,alpha,max=64". Empty means unconstrained.
	Constraint string
}

// Schema is the run-wide hashing configuration. It is treated as read-only
// once a run starts.
type Schema struct {
	Fields []Field
	// Length is the number of bits in a CLK before folding.
	Length uint
	// XORFolds is the number of times each CLK is folded in half.
	XORFolds int
	KDF      KDFParams
}

// Validate checks that s describes a usable configuration.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: schema has no fields", ErrConfig)
	}
	if s.Length == 0 {
		return fmt.Errorf("%w: bloom filter length must be positive", ErrConfig)
	}
	if s.XORFolds < 0 {
		return fmt.Errorf("%w: xor folds must not be negative, got %d", ErrConfig, s.XORFolds)
	}
	if s.XORFolds >= 64 || s.Length%(uint(1)<<s.XORFolds) != 0 {
		return fmt.Errorf("%w: length %d cannot be folded %d times", ErrConfig, s.Length, s.XORFolds)
	}
	if _, err := s.KDF.withDefaults().check(); err != nil {
		return err
	}

	v := validator.New()
	for i, f := range s.Fields {
		if f.Ignored {
			continue
		}
		if f.K < 0 {
			return fmt.Errorf("%w: field %d (%s): k must not be negative", ErrConfig, i, f.Name)
		}
		if f.K > 0 && f.NGram <= 0 {
			return fmt.Errorf("%w: field %d (%s): ngram size must be positive", ErrConfig, i, f.Name)
		}
		if f.Constraint != "" {
			if err := checkTag(v, f.Constraint); err != nil {
				return fmt.Errorf("%w: field %d (%s): bad constraint %q: %v", ErrConfig, i, f.Name, f.Constraint, err)
			}
		}
	}
	return nil
}

// Names returns the field names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Fingerprint returns a hash of the schema's non-secret parameters. Two
// parties that must produce comparable CLKs should see the same value.
func (s *Schema) Fingerprint() uint64 {
	return fingerprint(s)
}

// checkTag reports whether tag parses. The validator panics on unknown tags.
func checkTag(v *validator.Validate, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	_ = v.Var("", tag)
	return nil
}
