package clk

import (
	"context"
	"testing"
)

const benchRows = 20_000

var benchData = randomPeople(benchRows, 99)

// ============================================================================
// Per-record Benchmarks
// ============================================================================

func BenchmarkEncode(b *testing.B) {
	enc := testEncoder(b, testSchema(1024, 0))
	b.ResetTimer()
	for i := range b.N {
		if _, _, err := enc.Encode(benchData[i%benchRows]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeFolded(b *testing.B) {
	enc := testEncoder(b, testSchema(1024, 2))
	b.ResetTimer()
	for i := range b.N {
		if _, _, err := enc.EncodeFolded(benchData[i%benchRows]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDoubleHashPositions(b *testing.B) {
	kp := KeyPair{[]byte("0123456789abcdef"), []byte("fedcba9876543210")}
	tok := []byte("ab")
	b.ResetTimer()
	for range b.N {
		DoubleHashPositions(tok, kp, 30, 1024)
	}
}

func BenchmarkFold(b *testing.B) {
	v := randomBits(1024, 1)
	b.ResetTimer()
	for range b.N {
		if _, err := Fold(v, 3); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerialize(b *testing.B) {
	v := randomBits(1024, 1)
	b.ResetTimer()
	for range b.N {
		Serialize(v)
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func benchmarkPipeline(b *testing.B, workers int) {
	p := testPipeline(b, testSchema(1024, 0), WithWorkers(workers))
	b.ResetTimer()
	for range b.N {
		if _, err := p.Run(context.Background(), benchData); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(benchRows*b.N)/b.Elapsed().Seconds(), "rows/s")
}

func BenchmarkPipeline_1Worker(b *testing.B)  { benchmarkPipeline(b, 1) }
func BenchmarkPipeline_4Workers(b *testing.B) { benchmarkPipeline(b, 4) }
func BenchmarkPipeline_8Workers(b *testing.B) { benchmarkPipeline(b, 8) }
