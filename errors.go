package clk

import "errors"

var (
	// ErrConfig is returned for invalid run configuration: an unsupported
	// KDF or hash algorithm, a non-positive field count, a bad header mode
	// or an inconsistent schema. It is raised before any row is processed.
	ErrConfig = errors.New("clk: invalid configuration")

	// ErrRowLength is returned when a row does not have one value per
	// schema field.
	ErrRowLength = errors.New("clk: row length does not match schema")

	// ErrInvalidEntry is returned when a field value violates the field's
	// schema constraint.
	ErrInvalidEntry = errors.New("clk: invalid entry")

	// ErrHeader is returned when a header row does not match the schema's
	// field names.
	ErrHeader = errors.New("clk: header does not match schema")

	// ErrFold is returned when a fold would need to halve an odd-length
	// vector, or the fold count is negative.
	ErrFold = errors.New("clk: invalid xor fold")

	// ErrInvalidData is returned when a serialized CLK cannot be decoded
	// into a vector of the expected length.
	ErrInvalidData = errors.New("clk: invalid serialized data")

	// ErrWorker is returned when a pipeline worker fails while hashing a
	// chunk.
	ErrWorker = errors.New("clk: worker failed")
)
