package fluvial

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

type AmplitudeOptions struct {
	// Coupling holds per-station coupling efficiency factors. Default is
	// one for every station.
	Coupling []float64
	// AOI masks the cells used for localization; cells where the mask is
	// zero or NaN are skipped. Default is every cell.
	AOI *Raster
	// A0 is the start value of the source amplitude fit. Default is 100
	// times the largest coupling-corrected amplitude.
	A0 *float64
	// Normalise rescales the output raster to [0, 1]. Default true.
	Normalise *bool
	// Output selects the goodness metric. Default Variance.
	Output  OutputMode
	Workers int
	Verbose bool
}

// attenuationModel predicts the amplitude recorded at distance d from a
// source of amplitude a0, combining geometric spreading and anelastic
// attenuation.
func attenuationModel(a0, d, f, q, v float64) float64 {
	return a0 / math.Sqrt(d) * math.Exp(-(math.Pi*f*d)/(q*v))
}

// softL1 is the robust loss of a squared residual.
func softL1(z float64) float64 {
	return 2 * (math.Sqrt(1+z) - 1)
}

// fitSourceAmplitude fits the scalar source amplitude to the observed
// station amplitudes by robust nonlinear least squares and returns the sum
// of squared residuals at the solution.
func fitSourceAmplitude(dist, amp []float64, f, q, v, a0 float64) float64 {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			loss := 0.0
			for s := range dist {
				r := amp[s] - attenuationModel(x[0], dist[s], f, q, v)
				loss += softL1(pow2(r))
			}
			return loss
		},
	}

	fitted := a0
	if res, err := optimize.Minimize(problem, []float64{a0}, nil, &optimize.NelderMead{}); err == nil {
		fitted = res.X[0]
	}

	ssr := 0.0
	for s := range dist {
		r := amp[s] - attenuationModel(fitted, dist[s], f, q, v)
		ssr += pow2(r)
	}
	return ssr
}

// SpatialAmplitude locates the source of a seismic event by modelling
// amplitude attenuation over the distance fields. signals holds one signal
// (or pre-extracted peak amplitude) per station, dMaps the matching distance
// rasters, and v, q, f the attenuation model constants. The returned raster
// holds the goodness of fit per cell, NaN outside the AOI or where any
// distance is NaN.
func SpatialAmplitude(signals [][]float64, dMaps []*Raster, v, q, f float64, opts *AmplitudeOptions) (*Raster, error) {
	var o AmplitudeOptions
	if opts != nil {
		o = *opts
	}
	output := o.Output
	if output == "" {
		output = Variance
	}
	if output != Variance && output != Residuals {
		return nil, &InvalidOutputModeError{Mode: output}
	}
	if len(signals) == 0 || len(signals) != len(dMaps) {
		return nil, configErrorf("need one distance map per station, got %d signals and %d maps",
			len(signals), len(dMaps))
	}

	coupling := o.Coupling
	if coupling == nil {
		coupling = make([]float64, len(signals))
		for i := range coupling {
			coupling[i] = 1
		}
	}

	// Coupling-corrected peak amplitudes.
	amp := make([]float64, len(signals))
	for i, s := range signals {
		amp[i] = floats.Max(s) / coupling[i]
	}

	a0 := 100 * floats.Max(amp)
	if o.A0 != nil {
		a0 = *o.A0
	}

	ref := dMaps[0]
	out := NewRaster(ref.Width, ref.Height, ref.Bounds, ref.Srs)
	out.Fill(math.NaN())

	// Cells to process are selected up front so workers never need to
	// raise.
	var cells []int
	for idx := range ref.Data {
		if o.AOI != nil {
			m := o.AOI.Data[idx]
			if m == 0 || math.IsNaN(m) {
				continue
			}
		}
		cells = append(cells, idx)
	}
	if o.Verbose {
		log.Infof("amplitude fit over %d of %d cells", len(cells), len(ref.Data))
	}

	sumAmpSq := 0.0
	for _, a := range amp {
		sumAmpSq += pow2(a)
	}

	err := parallelMap(len(cells), o.Workers, func(k int) error {
		idx := cells[k]
		dist := make([]float64, len(dMaps))
		for s, m := range dMaps {
			dist[s] = m.Data[idx]
			if math.IsNaN(dist[s]) {
				return nil
			}
		}

		ssr := fitSourceAmplitude(dist, amp, f, q, v, a0)
		if output == Variance {
			out.Data[idx] = 1 - ssr/sumAmpSq
		} else {
			out.Data[idx] = ssr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	normalise := true
	if o.Normalise != nil {
		normalise = *o.Normalise
	}
	if normalise {
		out.Normalise()
	}
	return out, nil
}
