package clk

import "encoding/base64"

const (
	// SmallChunkSize is the number of rows per chunk for datasets of at most
	// ChunkThreshold rows.
	SmallChunkSize = 200
	// LargeChunkSize is the number of rows per chunk above ChunkThreshold.
	LargeChunkSize = 1000
	// ChunkThreshold is the row count at which the pipeline switches from
	// small to large chunks.
	ChunkThreshold = 10_000
)

// KDF defaults. They match the values other clkhash implementations use, so
// parties running different tools derive the same keys from the same secrets.
const (
	DefaultKDFType    = "HKDF"
	DefaultKDFHash    = "SHA256"
	DefaultKDFKeySize = 64
	DefaultKDFInfo    = "clkhash"
)

// defaultSaltB64 is the published clkhash HKDF salt.
const defaultSaltB64 = "SCbL2zHNnmsckfzchsNkZY9XoHk96P/G5nUBrM7ybymlEFsMV6PAeDZCNp3rfNUPCtLDMOGQHG4pCQpfhiHCyA=="

// DefaultKDFSalt returns a copy of the default HKDF salt.
func DefaultKDFSalt() []byte {
	salt, err := base64.StdEncoding.DecodeString(defaultSaltB64)
	if err != nil {
		panic(err)
	}
	return salt
}

// ChunkSize returns the number of rows per chunk for a dataset of n rows.
//
// Small datasets use small chunks so the last chunk to finish does not
// dominate the wall clock; large datasets use bigger chunks to amortize
// per-task overhead.
func ChunkSize(n int) int {
	if n <= ChunkThreshold {
		return SmallChunkSize
	}
	return LargeChunkSize
}
