package clk_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bits-and-blooms/bitset"
	"github.com/jcalabro/clk"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// This example hashes a small dataset into CLKs.
func Example() {
	schema := &clk.Schema{
		Length: 1024,
		Fields: []clk.Field{
			{Name: "name", NGram: 2, K: 30},
			{Name: "dob", NGram: 1, Positional: true, K: 20, Constraint: "len=10"},
		},
	}
	rows := [][]string{
		{"Jane Doe", "1980/04/01"},
		{"John Roe", "1979/11/23"},
	}
	secrets := [][]byte{[]byte("correct horse"), []byte("battery staple")}

	clks, err := clk.GenerateCLKs(context.Background(), rows, schema, secrets, clk.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	v, err := clk.Deserialize(clks[0], schema.Length)
	if err != nil {
		panic(err)
	}
	fmt.Println("CLKs:", len(clks))
	fmt.Println("bits:", v.Len())

	// Output:
	// CLKs: 2
	// bits: 1024
}

// This example shows XOR folding halving a vector.
func ExampleFold() {
	v := bitset.New(8)
	v.Set(0).Set(4).Set(5)

	folded, err := clk.Fold(v, 1)
	if err != nil {
		panic(err)
	}
	fmt.Println(folded.Len(), folded.Test(0), folded.Test(1))

	_, err = clk.Fold(bitset.New(25), 1)
	fmt.Println(err)

	// Output:
	// 4 false true
	// clk: invalid xor fold: fold 1 of 1 needs an even length, got 25
}

// This example shows popcounts reported through a ProgressSink.
func ExampleWithProgress() {
	schema := &clk.Schema{
		Length: 512,
		Fields: []clk.Field{{Name: "name", NGram: 2, K: 10}},
	}
	keys, err := clk.DeriveKeys([][]byte{[]byte("secret")}, len(schema.Fields), schema.KDF)
	if err != nil {
		panic(err)
	}

	sink := &countingSink{}
	p, err := clk.NewPipeline(schema, keys, clk.WithProgress(sink), clk.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	if _, err := p.Run(context.Background(), [][]string{{"a"}, {"b"}, {""}}); err != nil {
		panic(err)
	}
	fmt.Println("total:", sink.total, "done:", sink.done, "empty:", sink.zero)

	// Output:
	// total: 3 done: 3 empty: 1
}

type countingSink struct {
	total, done, zero int
}

func (s *countingSink) Init(total int) { s.total = total }

func (s *countingSink) Advance(rows int, popcounts []int) {
	s.done += rows
	for _, c := range popcounts {
		if c == 0 {
			s.zero++
		}
	}
}

func (s *countingSink) Finish() {}
