package fluvial

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const defaultSupportLength = 10000

var defaultSupportRange = [2]float64{0.0001, 10}

// GrainSizeDistribution is a probability density over grain diameters on a
// log-spaced support. Density integrates (Riemann) to one over the support.
type GrainSizeDistribution struct {
	Diameter []float64
	Density  []float64
	Median   float64
}

type GrainSizeOptions struct {
	// Parametric form: raised cosine over log diameter.
	MeanDiameter float64
	Sigma        float64

	// Empirical form: (diameter, weight) pairs, alternative to the
	// parametric pair.
	Table [][2]float64

	SupportLength int
	SupportRange  *[2]float64
}

// NewGrainSizeDistribution builds a grain-size density from either the
// parametric raised-cosine form or an empirical table.
func NewGrainSizeDistribution(opts GrainSizeOptions) (*GrainSizeDistribution, error) {
	n := opts.SupportLength
	if n <= 0 {
		n = defaultSupportLength
	}

	if len(opts.Table) > 0 {
		return grainSizeFromTable(opts.Table, n)
	}
	if opts.MeanDiameter > 0 && opts.Sigma > 0 {
		lim := defaultSupportRange
		if opts.SupportRange != nil {
			lim = *opts.SupportRange
		}
		return grainSizeRaisedCosine(opts.MeanDiameter, opts.Sigma, lim, n), nil
	}
	return nil, configErrorf("grain-size distribution needs either a mean diameter and sigma or an empirical table")
}

// cosineHalfWidth maps the log standard deviation to the half-width of the
// raised cosine density.
func cosineHalfWidth(sigma float64) float64 {
	return sigma / math.Sqrt(1.0/3.0-2.0/pow2(math.Pi))
}

// raisedCosineDensity evaluates the raised cosine density over diameter,
// centered at log(dS) with half-width s. Zero outside the support.
func raisedCosineDensity(d, dS, s float64) float64 {
	u := math.Log(d) - math.Log(dS)
	if u > s || u < -s {
		return 0
	}
	return (1 + math.Cos(math.Pi*u/s)) / (2 * s * d)
}

func grainSizeRaisedCosine(dS, sigma float64, lim [2]float64, n int) *GrainSizeDistribution {
	s := cosineHalfWidth(sigma)

	x := make([]float64, n)
	floats.LogSpan(x, lim[0], lim[1])

	diameter := make([]float64, 0, n)
	density := make([]float64, 0, n)
	for _, d := range x {
		p := raisedCosineDensity(d, dS, s)
		if p > 0 {
			diameter = append(diameter, d)
			density = append(density, p)
		}
	}

	return &GrainSizeDistribution{
		Diameter: diameter,
		Density:  density,
		Median:   dS,
	}
}

func grainSizeFromTable(table [][2]float64, n int) (*GrainSizeDistribution, error) {
	pts := make([][2]float64, len(table))
	copy(pts, table)
	sort.Slice(pts, func(i, j int) bool { return pts[i][0] < pts[j][0] })

	for _, p := range pts {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
			return nil, inputErrorf("grain-size table contains NaN")
		}
		if p[1] < 0 {
			return nil, configErrorf("grain-size weight below zero for diameter %g", p[0])
		}
	}

	dMin := math.Pow(10, math.Ceil(math.Log10(pts[0][0]/10)))
	dMax := math.Pow(10, math.Ceil(math.Log10(pts[len(pts)-1][0])))

	x := make([]float64, n)
	floats.LogSpan(x, dMin, dMax)

	raw := make([]float64, n)
	for i, d := range x {
		raw[i] = interpTable(pts, d)
	}

	// Renormalise so the Riemann sum over diameter equals one.
	total := 0.0
	for i := 1; i < n; i++ {
		total += raw[i] * (x[i] - x[i-1])
	}
	if total <= 0 {
		return nil, configErrorf("grain-size table has zero total weight")
	}
	density := make([]float64, n)
	for i := range raw {
		density[i] = raw[i] / total
	}

	// Effective mean diameter: where the cumulative density first reaches
	// one half.
	median := x[n-1]
	cum := 0.0
	for i := 1; i < n; i++ {
		cum += density[i] * (x[i] - x[i-1])
		if cum >= 0.5 {
			median = x[i]
			break
		}
	}

	return &GrainSizeDistribution{
		Diameter: x,
		Density:  density,
		Median:   median,
	}, nil
}

// interpTable linearly interpolates the (diameter, weight) table at d,
// returning zero outside the table range.
func interpTable(pts [][2]float64, d float64) float64 {
	if d < pts[0][0] || d > pts[len(pts)-1][0] {
		return 0
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i][0] >= d })
	if i == 0 {
		return pts[0][1]
	}
	p0, p1 := pts[i-1], pts[i]
	if p1[0] == p0[0] {
		return p0[1]
	}
	t := (d - p0[0]) / (p1[0] - p0[0])
	return p0[1] + t*(p1[1]-p0[1])
}

// weights converts the density to integration weights over the support.
// With area normalization the weight of each class is density times the
// diameter step, otherwise plain-sum normalization is used.
func (g *GrainSizeDistribution) weights(area bool) []float64 {
	w := make([]float64, len(g.Density))
	if area {
		for i := range g.Density {
			if i == 0 {
				continue
			}
			w[i] = g.Density[i] * (g.Diameter[i] - g.Diameter[i-1])
		}
		return w
	}
	total := floats.Sum(g.Density)
	if total == 0 {
		return w
	}
	for i := range g.Density {
		w[i] = g.Density[i] / total
	}
	return w
}
