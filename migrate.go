package fluvial

import (
	"math"
	"math/cmplx"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

type MigrateOptions struct {
	// SNR holds signal-to-noise ratios per trace for correlation
	// normalization; derived from the signals when absent.
	SNR []float64
	// Normalise enables SNR weighting of the station pair correlations.
	// Default true.
	Normalise *bool
	Verbose   bool
}

// crossCorrelate computes the full cross-correlation of a and b via FFT.
// The returned slice covers lags -(n-1)..(n-1); index l+n-1 holds
// sum over t of a[t+l]*b[t].
func crossCorrelate(a, b []float64) []float64 {
	n := len(a)
	m := 2 * n
	fft := fourier.NewFFT(m)

	pad := func(x []float64) []float64 {
		p := make([]float64, m)
		copy(p, x)
		return p
	}
	ca := fft.Coefficients(nil, pad(a))
	cb := fft.Coefficients(nil, pad(b))
	for i := range ca {
		ca[i] *= cmplx.Conj(cb[i])
	}
	circ := fft.Sequence(nil, ca)
	floats.Scale(1/float64(m), circ)

	out := make([]float64, 2*n-1)
	for l := -(n - 1); l <= n-1; l++ {
		k := l
		if k < 0 {
			k += m
		}
		out[l+n-1] = circ[k]
	}
	return out
}

// SpatialMigrate migrates cross-correlated station pair signals through the
// distance fields to build a source density raster. data holds one signal
// per station, dStations the inter-station distance matrix, dMaps the
// per-station distance rasters, v the mean wave velocity and dt the
// sampling period.
func SpatialMigrate(data [][]float64, dStations [][]float64, dMaps []*Raster, v, dt float64, opts *MigrateOptions) (*Raster, error) {
	var o MigrateOptions
	if opts != nil {
		o = *opts
	}
	normalise := true
	if o.Normalise != nil {
		normalise = *o.Normalise
	}

	nSta := len(data)
	if nSta < 2 {
		return nil, configErrorf("migration needs at least two signals, got %d", nSta)
	}
	nSmp := len(data[0])
	for i, d := range data {
		if len(d) != nSmp {
			return nil, configErrorf("signal %d has %d samples, expected %d", i, len(d), nSmp)
		}
	}
	if len(dStations) != nSta || len(dMaps) != nSta {
		return nil, configErrorf("station distance matrix and maps must match the signal count")
	}
	for i := range dStations {
		if len(dStations[i]) != nSta {
			return nil, configErrorf("station distance matrix must be square")
		}
	}
	if v <= 0 || dt <= 0 {
		return nil, domainErrorf("velocity and sampling period must be positive")
	}

	// Trace statistics and SNR weights.
	snr := o.SNR
	if snr == nil {
		if o.Verbose && normalise {
			log.Info("no SNR given, deriving from signals")
		}
		snr = make([]float64, nSta)
		for i, d := range data {
			mean := floats.Sum(d) / float64(nSmp)
			snr[i] = floats.Max(d) / mean
		}
	}
	snrMean := floats.Sum(snr) / float64(nSta)

	// Min-max normalize the traces.
	norm := make([][]float64, nSta)
	for i, d := range data {
		lo := floats.Min(d)
		hi := floats.Max(d)
		if hi == lo {
			return nil, inputErrorf("signal %d is constant, cannot normalize", i)
		}
		norm[i] = make([]float64, nSmp)
		for t, x := range d {
			norm[i][t] = (x - lo) / (hi - lo)
		}
	}

	ref := dMaps[0]
	sum := NewRaster(ref.Width, ref.Height, ref.Bounds, ref.Srs)
	nPairs := 0

	for i := 0; i < nSta; i++ {
		for j := i + 1; j < nSta; j++ {
			if o.Verbose {
				log.Infof("migrating station pair (%d, %d)", i, j)
			}
			cc := crossCorrelate(norm[i], norm[j])

			// Limit lags to physically possible travel time
			// differences.
			lagLim := math.Ceil(dStations[i][j] / v)
			tMax := 0.0
			best := math.Inf(-1)
			for k, c := range cc {
				lag := float64(k-(nSmp-1)) * dt
				if math.Abs(lag) > lagLim {
					continue
				}
				if c > best {
					best = c
					tMax = lag
				}
			}

			weight := 1.0
			if normalise {
				weight = ((snr[i] + snr[j]) / 2) / snrMean
			}

			lagEmpiric := dStations[i][j] / v
			for idx := range sum.Data {
				lagModel := (dMaps[i].Data[idx] - dMaps[j].Data[idx]) / v
				sum.Data[idx] += weight * math.Exp(-0.5*pow2((lagModel-tMax)/lagEmpiric))
			}
			nPairs++
		}
	}

	floats.Scale(1/float64(nPairs), sum.Data)
	return sum, nil
}
