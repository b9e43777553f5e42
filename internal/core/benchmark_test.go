package core

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// ============================================================================
// Conversion Function Benchmarks
// ============================================================================

// BenchmarkSplitName benchmarks the combined name split.
// This runs once per matched row.
func BenchmarkSplitName(b *testing.B) {
	testCases := []string{
		"MARCHAND*JEAN PIERRE/",
		"DE LA TOUR*MARIE/",
		"VERT",
		" ROTURIER * PAUL ",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			SplitName(tc)
		}
	}
}

// BenchmarkParseCompactDate benchmarks YYYYMMDD parsing, valid and not.
func BenchmarkParseCompactDate(b *testing.B) {
	testCases := []string{"19450203", "20200610", "19450000", "abc", ""}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseCompactDate(tc)
		}
	}
}

// BenchmarkSniffDelimiter benchmarks delimiter detection on a header line.
func BenchmarkSniffDelimiter(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SniffDelimiter(sourceHeader)
	}
}

// ============================================================================
// Transform and Search Benchmarks
// ============================================================================

// BenchmarkTransform benchmarks a full row transform with reference lookup.
func BenchmarkTransform(b *testing.B) {
	tr := NewTransformer(testReferences(), nil, PolicyStrict)
	raw := rawFrom(sourceHeader, "MARCHAND*JEAN/;1;19450203;75112;PARIS;;20200610;75012;1", ";")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.Transform(raw); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearch_Snapshot benchmarks one name search over preloaded rows.
func BenchmarkSearch_Snapshot(b *testing.B) {
	for _, rows := range []int{1000, 10000} {
		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			s := NewSearcher(benchSnapshot(rows), NewTransformer(testReferences(), nil, PolicyStrict))
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Search(ctx, "Marchand"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// benchSnapshot builds rows where one in ten matches "Marchand".
func benchSnapshot(n int) *Snapshot {
	header := strings.Split(sourceHeader, ";")
	rows := make([][]string, n)
	for i := range rows {
		name := fmt.Sprintf("NOM%d*PRENOM/", i)
		if i%10 == 0 {
			name = "MARCHAND*JEAN/"
		}
		rows[i] = []string{name, "1", "19450203", "", "", "", "20200610", "75012", "1"}
	}
	return NewSnapshot(&Table{Header: header, Index: MakeHeaderIndex(header), Rows: rows})
}
