package clk

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// DoubleHashPositions returns the k bit positions token maps to in a vector
// of length l.
//
// h1 is HMAC-SHA1 under kp[0] and h2 is HMAC-MD5 under kp[1], each read as a
// big-endian integer and reduced mod l. Position i is (h1 + i*h2) mod l.
// Positions may repeat. Independent parties must compute identical positions,
// so this function has no state beyond its arguments.
func DoubleHashPositions(token []byte, kp KeyPair, k int, l uint) []uint {
	if k <= 0 || l == 0 {
		return nil
	}
	h1, h2 := hashPair(token, kp, uint64(l))

	positions := make([]uint, k)
	for i := range positions {
		positions[i] = uint(addMod(h1, mulMod(uint64(i), h2, uint64(l)), uint64(l)))
	}
	return positions
}

// hashPair computes the two keyed hashes of token, reduced mod l.
func hashPair(token []byte, kp KeyPair, l uint64) (h1, h2 uint64) {
	m1 := hmac.New(sha1.New, kp[0])
	m1.Write(token)
	m2 := hmac.New(md5.New, kp[1])
	m2.Write(token)
	return reduce(m1.Sum(nil), l), reduce(m2.Sum(nil), l)
}

// reduce returns the big-endian integer in b modulo l.
func reduce(b []byte, l uint64) uint64 {
	var r uint64
	for _, c := range b {
		r = addMod(mulMod(r, 256, l), uint64(c)%l, l)
	}
	return r
}

// addMod returns (a + b) mod l for a, b < l.
func addMod(a, b, l uint64) uint64 {
	if a >= l-b {
		return a - (l - b)
	}
	return a + b
}

// mulMod returns (a * b) mod l without overflowing.
func mulMod(a, b, l uint64) uint64 {
	var r uint64
	a %= l
	for b > 0 {
		if b&1 == 1 {
			r = addMod(r, a, l)
		}
		a = addMod(a, a, l)
		b >>= 1
	}
	return r
}

// fingerprint hashes the non-secret hashing parameters of s.
func fingerprint(s *Schema) uint64 {
	h := xxh3.New()
	var buf [8]byte
	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeStr := func(v string) {
		writeInt(uint64(len(v)))
		h.WriteString(v)
	}

	writeInt(uint64(s.Length))
	writeInt(uint64(s.XORFolds))
	kdf := s.KDF.withDefaults()
	writeStr(kdf.Type)
	writeStr(kdf.Hash)
	writeInt(uint64(kdf.KeySize))
	writeStr(string(kdf.Salt))
	writeStr(string(kdf.Info))
	writeInt(uint64(len(s.Fields)))
	for _, f := range s.Fields {
		writeStr(f.Name)
		writeInt(uint64(f.NGram))
		writeInt(uint64(f.K))
		var flags uint64
		if f.Positional {
			flags |= 1
		}
		if f.Ignored {
			flags |= 2
		}
		writeInt(flags)
	}
	return h.Sum64()
}
