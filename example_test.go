package fluvial

import (
	"fmt"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

func ExampleNewGrainSizeDistribution() {
	gsd, _ := NewGrainSizeDistribution(GrainSizeOptions{
		MeanDiameter: 0.01,
		Sigma:        1.35,
	})
	fmt.Printf("%g", gsd.Median)
	// Output:
	// 0.01
}

func ExampleSpatialPmax() {
	bounds := vec2d.Rect{Min: vec2d.T{0, 0}, Max: vec2d.T{100, 100}}
	density := NewRaster(100, 100, bounds, nil)
	density.SetValue(40, 60, 1)

	fmt.Printf("%v", SpatialPmax(density))
	// Output:
	// [[60.5 59.5]]
}

func ExampleParameters_Sample() {
	template := Parameters{
		Ds: Fixed(0.01), Ss: Fixed(1.35), Rs: Fixed(2650),
		Qs: Range(0.001, 50.0/2650),
		Ww: Fixed(6), Aw: Fixed(0.0075),
		Hw:   Range(0.02, 2.00),
		Fmin: Fixed(5), Fmax: Fixed(80),
		R0: Fixed(6), F0: Fixed(1), Q0: Fixed(10),
		V0: Fixed(350), P0: Fixed(0.55), E0: Fixed(0.09),
		N0a: Fixed(0.6), N0b: Fixed(0.8),
		Res: Fixed(100),
	}

	sets := template.Sample(1000, 1)
	fmt.Printf("%d %g %d", len(sets), sets[0].Ds, sets[0].Res)
	// Output:
	// 1000 0.01 100
}
