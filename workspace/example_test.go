package workspace

import (
	"fmt"

	"github.com/cwbudde/algo-profile/profile"
)

func ExampleWorkspace_Apply() {
	film, _ := profile.Pulse(profile.PulseConfig{Center: 1, Width: 4, Start: -6, End: 6, Increment: 0.5})

	before, _, _ := New().Append("film", film)
	after, _ := before.Apply(0, "flipped", func(p *profile.Profile) (*profile.Profile, error) {
		return p.Flipped(), nil
	})

	undo, _ := before.At(0)
	hist, _ := after.History(0)
	fmt.Println(undo.Label, len(hist), hist[0].Label)
	// Output:
	// film 2 flipped
}
