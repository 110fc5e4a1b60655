package clk

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// HeaderMode says how a header row, if any, is handled before rows reach
// the pipeline.
type HeaderMode int

const (
	// HeaderCheck means a header is present and must match the field names.
	HeaderCheck HeaderMode = iota
	// HeaderIgnore means a header is present but is not checked.
	HeaderIgnore
	// HeaderNone means the input has no header.
	HeaderNone
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderCheck:
		return "check"
	case HeaderIgnore:
		return "ignore"
	case HeaderNone:
		return "none"
	default:
		return fmt.Sprintf("HeaderMode(%d)", int(m))
	}
}

// ValidateHeader checks names against fields according to mode.
func ValidateHeader(mode HeaderMode, fields []Field, names []string) error {
	switch mode {
	case HeaderIgnore, HeaderNone:
		return nil
	case HeaderCheck:
	default:
		return fmt.Errorf("%w: unknown header mode %d", ErrConfig, int(mode))
	}

	if len(names) != len(fields) {
		return fmt.Errorf("%w: header has %d columns, schema has %d fields", ErrHeader, len(names), len(fields))
	}
	for i, f := range fields {
		if names[i] != f.Name {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrHeader, i, names[i], f.Name)
		}
	}
	return nil
}

// ValidateRowLengths checks that every row has one value per field.
func ValidateRowLengths(fields []Field, rows [][]string) error {
	for i, row := range rows {
		if len(row) != len(fields) {
			return fmt.Errorf("%w: row %d has %d values, expected %d", ErrRowLength, i, len(row), len(fields))
		}
	}
	return nil
}

// ValidateRows checks every row against the schema. It fails on the first
// bad row so that no hashing is done for a dataset with invalid entries.
func ValidateRows(fields []Field, rows [][]string) error {
	if err := ValidateRowLengths(fields, rows); err != nil {
		return err
	}

	v := validator.New()
	for i, row := range rows {
		for j, f := range fields {
			if f.Ignored || f.Constraint == "" {
				continue
			}
			if err := v.Var(row[j], f.Constraint); err != nil {
				return fmt.Errorf("%w: row %d field %d (%s): %v", ErrInvalidEntry, i, j, f.Name, err)
			}
		}
	}
	return nil
}
