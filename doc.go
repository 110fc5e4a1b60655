// Package clk builds cryptographic linkage keys (CLKs) for privacy-preserving
// record linkage.
//
// A CLK is a fixed-length Bloom filter encoding one record. Two parties that
// share secret keys hash their records independently; records that describe
// the same entity produce CLKs with a high overlap even when the values
// differ slightly (typos, swapped letters), while the values themselves
// cannot be read back out of the CLK.
//
// # Construction
//
// Key derivation: [DeriveKeys] expands one or two master secrets with HKDF
// into a [KeyList] holding a [KeyPair] for every schema field.
//
// Encoding: [Encoder.Encode] splits each field value into n-grams with
// [Tokenize]. Every token is hashed with HMAC-SHA1 and HMAC-MD5 under the
// field's key pair and k bit positions are derived from the two hashes by
// double hashing:
//
//	g_i = (h1 + i*h2) mod L,   0 <= i < k
//
// See [DoubleHashPositions]. The bits of all fields are OR-ed into one
// vector of L bits.
//
// Folding: [Fold] optionally halves the vector one or more times by XOR-ing
// its two halves. Folding hides more about individual bits at the cost of
// some matching accuracy. Every fold needs an even length.
//
// Serialization: [Serialize] packs the vector MSB-first and base64-encodes
// it; [Deserialize] reverses it. [Popcount] counts set bits.
//
// # Pipelines
//
// [Pipeline] applies the above to a whole dataset. Rows are validated, split
// into chunks (see [ChunkSize]), hashed concurrently and reassembled in input
// order. Progress is reported per chunk through an optional [ProgressSink];
// [MetricsSink] exports it to Prometheus. [GenerateCLKs] derives keys and
// runs a pipeline in one call:
//
//	schema := &clk.Schema{
//		Length: 1024,
//		Fields: []clk.Field{
//			{Name: "name", NGram: 2, K: 30},
//			{Name: "dob", NGram: 1, K: 20, Constraint: "required,len=10"},
//		},
//	}
//	clks, err := clk.GenerateCLKs(ctx, rows, schema, [][]byte{secret1, secret2})
//
// # Determinism
//
// Identical rows, schema and keys always give bit-identical CLKs, regardless
// of chunking or worker count. [Schema.Fingerprint] summarizes the non-secret
// parameters so parties can check their configurations agree.
//
// # Thread Safety
//
// [Encoder] is safe for concurrent use. The [KeyList] and [Schema] passed to
// an [Encoder] or [Pipeline] must not be modified while they are in use.
//
// # References
//
//   - Schnell, Bachteler, Reiher: A Novel Error-Tolerant Anonymous Linking Code (2011)
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
package clk
