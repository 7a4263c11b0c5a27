package profile

import "fmt"

func ExamplePulse() {
	p, _ := Pulse(PulseConfig{Center: 0, Width: 4, Start: -4, End: 4, Increment: 1})
	left, right, _ := p.Edges()
	fmt.Println(p.Values())
	fmt.Printf("edges %.1f %.1f\n", left, right)
	// Output:
	// [0 0 0.5 1 1 1 0.5 0 0]
	// edges -2.0 2.0
}

func ExampleProfile_Flatness() {
	x := make([]float64, 21)
	for i := range x {
		x[i] = float64(i - 10)
	}
	y := []float64{
		0, 0, 0, 0, 0.25, 0.5,
		1, 1, 0.9, 1, 1, 1, 0.8, 1, 1,
		0.5, 0.25, 0, 0, 0, 0,
	}
	p, _ := New(x, y, nil)

	flat, _ := p.Flatness()
	sym, _ := p.Symmetry()
	fmt.Printf("flatness %.4f symmetry %.4f\n", flat, sym)
	// Output:
	// flatness 0.1111 symmetry 0.0588
}

func ExampleProfile_AlignTo() {
	ref, _ := Pulse(PulseConfig{Center: 0, Width: 6, Start: -10, End: 10, Increment: 0.5})
	film, _ := Pulse(PulseConfig{Center: 2, Width: 3, Start: -10, End: 10, Increment: 0.5})

	aligned, res, _ := film.AlignTo(ref, WithScale(true))
	left, right, _ := aligned.Edges()
	fmt.Printf("%s scale %.1f offset %.1f\n", res.Mode, res.Scale, res.Offset)
	fmt.Printf("edges %.1f %.1f\n", left, right)
	// Output:
	// edges scale 2.0 offset -4.0
	// edges -3.0 3.0
}

func ExampleProfile_PositionsAt() {
	p, _ := New([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 0, 1, 0}, nil)
	fmt.Println(p.PositionsAt(0.5))
	// Output:
	// [0.5 1.5 2.5 3.5]
}
