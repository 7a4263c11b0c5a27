package profile

import (
	"testing"

	"github.com/cwbudde/algo-profile/internal/testutil"
)

func benchProfile(b *testing.B, n int) *Profile {
	b.Helper()
	x := testutil.Grid(-30, 60/float64(n-1), n)
	return mustNew(b, x, testutil.Field(x, 0.4, 20, 1.2))
}

func BenchmarkValueAt(b *testing.B) {
	p := benchProfile(b, 1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = p.ValueAt(float64(i%50) - 25)
	}
}

func BenchmarkPartition(b *testing.B) {
	p := benchProfile(b, 1024)
	cfg := DefaultRegionConfig()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = p.Partition(cfg)
	}
}

func BenchmarkAlignCorrelation(b *testing.B) {
	ref := benchProfile(b, 1024)
	p, _ := ref.Shifted(1.7)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = p.AlignTo(ref, WithAlignMode(AlignCorrelation))
	}
}
