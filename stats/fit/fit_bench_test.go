package fit

import (
	"math"
	"strconv"
	"testing"
)

func BenchmarkPiecewiseLinear(b *testing.B) {
	x := grid(0, 10, 0.05)
	y := apply(x, func(v float64) float64 { return 1 - math.Exp(-v/3) })

	for _, segments := range []int{2, 4, 8} {
		b.Run("segments="+strconv.Itoa(segments), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := PiecewiseLinear(x, y, segments); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
