package domain

import (
	"fmt"
	"testing"
)

func benchQuotes(n int, prefix, category string) []Quote {
	out := make([]Quote, n)
	for i := range out {
		out[i] = Quote{Text: fmt.Sprintf("%s %d", prefix, i), Category: category}
	}

	return out
}

// BenchmarkMerge measures a sync against a large local collection where
// half the remote records conflict.
func BenchmarkMerge(b *testing.B) {
	local := benchQuotes(1000, "Quote", "Local")
	remote := append(benchQuotes(50, "QUOTE", "Server"), benchQuotes(50, "Remote", "Server")...)

	b.ReportAllocs()

	for b.Loop() {
		Merge(NewCollection(local), remote)
	}
}

func BenchmarkFilter(b *testing.B) {
	c := NewCollection(append(benchQuotes(500, "a", "A"), benchQuotes(500, "b", "B")...))

	b.ReportAllocs()

	for b.Loop() {
		c.Filter("B")
	}
}
