package clk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRows(t *testing.T) {
	fields := testSchema(1024, 0).Fields
	good := [][]string{
		{"Jane Doe", "1980/04/01", "F"},
		{"John Roe", "1979/11/23", "M"},
	}
	require.NoError(t, ValidateRows(fields, good))
	require.NoError(t, ValidateRows(fields, nil))

	err := ValidateRows(fields, append(good, []string{"X", "1980/04/01"}))
	require.ErrorIs(t, err, ErrRowLength)
	require.ErrorContains(t, err, "row 2")

	err = ValidateRows(fields, append(good, []string{"X", "1980-4-1", "F"}))
	require.ErrorIs(t, err, ErrInvalidEntry)
	require.ErrorContains(t, err, "row 2 field 1 (dob)")

	err = ValidateRows(fields, [][]string{{"X", "1980/04/01", "unknown"}})
	require.ErrorIs(t, err, ErrInvalidEntry)
}

func TestValidateRowsSkipsIgnored(t *testing.T) {
	fields := testSchema(1024, 0).Fields
	fields[2].Ignored = true
	require.NoError(t, ValidateRows(fields, [][]string{{"X", "1980/04/01", "whatever"}}))
}

func TestValidateHeader(t *testing.T) {
	fields := testSchema(1024, 0).Fields

	require.NoError(t, ValidateHeader(HeaderCheck, fields, []string{"name", "dob", "gender"}))
	require.NoError(t, ValidateHeader(HeaderIgnore, fields, []string{"a", "b"}))
	require.NoError(t, ValidateHeader(HeaderNone, fields, nil))

	require.ErrorIs(t, ValidateHeader(HeaderCheck, fields, []string{"name", "dob"}), ErrHeader)
	require.ErrorIs(t, ValidateHeader(HeaderCheck, fields, []string{"name", "gender", "dob"}), ErrHeader)
	require.ErrorIs(t, ValidateHeader(HeaderMode(7), fields, nil), ErrConfig)
	require.Equal(t, "HeaderMode(7)", HeaderMode(7).String())
	require.Equal(t, "ignore", HeaderIgnore.String())
}

func TestSchemaValidate(t *testing.T) {
	require.NoError(t, testSchema(1024, 3).Validate())

	tests := map[string]func(s *Schema){
		"no fields":      func(s *Schema) { s.Fields = nil },
		"zero length":    func(s *Schema) { s.Length = 0 },
		"negative folds": func(s *Schema) { s.XORFolds = -1 },
		"odd fold":       func(s *Schema) { s.Length = 98; s.XORFolds = 2 },
		"negative k":     func(s *Schema) { s.Fields[0].K = -1 },
		"zero ngram":     func(s *Schema) { s.Fields[0].NGram = 0 },
		"bad constraint": func(s *Schema) { s.Fields[1].Constraint = "no_such_tag" },
		"bad kdf hash":   func(s *Schema) { s.KDF.Hash = "CRC32" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := testSchema(1024, 0)
			mutate(s)
			require.ErrorIs(t, s.Validate(), ErrConfig)
		})
	}
}

func TestSchemaNames(t *testing.T) {
	require.Equal(t, []string{"name", "dob", "gender"}, testSchema(64, 0).Names())
}
