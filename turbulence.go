package fluvial

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// Spectrum is a power spectral density over a frequency vector. Power is in
// linear scale unless stated otherwise.
type Spectrum struct {
	Frequency []float64
	Power     []float64
}

// TurbulenceOptions carries the secondary physical constants of the
// turbulence model.
type TurbulenceOptions struct {
	Gravity         float64  // m/s^2, default 9.81
	Kolmogorov      float64  // Kolmogorov constant, default 0.5
	RoughnessLength *float64 // m, default 3 * d_s
	FluidDensity    float64  // kg/m^3, default 1000
	FrictionCoeff   float64  // fluid-grain friction coefficient, default 0.5
	QuadPoints      int      // quadrature order for the grain-size integral
}

func (o *TurbulenceOptions) defaults() TurbulenceOptions {
	out := TurbulenceOptions{
		Gravity:       9.81,
		Kolmogorov:    0.5,
		FluidDensity:  1000,
		FrictionCoeff: 0.5,
		QuadPoints:    200,
	}
	if o == nil {
		return out
	}
	if o.Gravity > 0 {
		out.Gravity = o.Gravity
	}
	if o.Kolmogorov > 0 {
		out.Kolmogorov = o.Kolmogorov
	}
	if o.FluidDensity > 0 {
		out.FluidDensity = o.FluidDensity
	}
	if o.FrictionCoeff > 0 {
		out.FrictionCoeff = o.FrictionCoeff
	}
	if o.QuadPoints > 0 {
		out.QuadPoints = o.QuadPoints
	}
	out.RoughnessLength = o.RoughnessLength
	return out
}

// frequencyVector expands a frequency specification: an explicit vector of
// length above two is used verbatim, a two-element (low, high) pair is
// expanded to res log-spaced points, nil falls back to the (fmin, fmax)
// parameter bounds. Log spacing matches the log-spaced grain-diameter
// support of the bedload model.
func frequencyVector(f []float64, fmin, fmax float64, res int) ([]float64, error) {
	switch {
	case len(f) == 0:
		if res < 2 {
			return nil, configErrorf("spectrum resolution %d below 2", res)
		}
		out := make([]float64, res)
		floats.LogSpan(out, fmin, fmax)
		return out, nil
	case len(f) == 2:
		if res < 2 {
			return nil, configErrorf("spectrum resolution %d below 2", res)
		}
		out := make([]float64, res)
		floats.LogSpan(out, f[0], f[1])
		return out, nil
	case len(f) == 1:
		return nil, configErrorf("frequency input needs a range or a vector, got one value")
	default:
		out := make([]float64, len(f))
		copy(out, f)
		return out, nil
	}
}

// attenuation evaluates the dimensionless attenuation parameter beta and the
// attenuation integral psi(beta) for one frequency.
func attenuation(f, r0, v0, q0, f0, p0, e0 float64) (beta, psi float64) {
	beta = (2 * math.Pi * r0 * (1 + p0) * math.Pow(f, 1+p0-e0)) /
		(v0 * q0 * math.Pow(f0, p0-e0))
	psi = 2*math.Log(1+1/beta)*math.Exp(-2*beta) +
		(1-math.Exp(-beta))*math.Exp(-beta)*math.Sqrt(2*math.Pi/beta)
	return beta, psi
}

// ModelTurbulence predicts the seismic power spectral density caused by
// hydraulic turbulence, after Gimbert et al. (2014). The frequency argument
// follows the frequencyVector contract; pass nil to use the parameter
// bounds. Output power is linear scale.
func ModelTurbulence(p ParameterSet, f []float64, opts *TurbulenceOptions) (*Spectrum, error) {
	if p.Q0 == 0 || p.F0 == 0 || p.V0 == 0 {
		return nil, domainErrorf("q_0, f_0 and v_0 must be non-zero")
	}

	o := opts.defaults()
	kS := 3 * p.Ds
	if o.RoughnessLength != nil {
		kS = *o.RoughnessLength
	}

	fSeq, err := frequencyVector(f, p.Fmin, p.Fmax, p.Res)
	if err != nil {
		return nil, err
	}

	// Friction-law geometry factors and turbulence intensity.
	cP0 := 4 * (1 - kS/(4*p.Hw))
	cKs := 8 * (1 - kS/(2*p.Hw))
	cS := 0.2 * (5.62*math.Log10(p.Hw/kS) + 4)
	zeta := math.Pow(math.Abs(cKs), 2.0/3.0) * math.Pow(cP0, 8.0/3.0) * math.Pow(cS, 4.0/3.0)

	uS := math.Sqrt(o.Gravity * p.Hw * math.Sin(p.Aw))
	uP0 := cP0 * uS
	s := cosineHalfWidth(p.Ss)

	// Grain-size integration limits.
	dLo := math.Exp(-s) * p.Ds
	dHi := math.Exp(s) * p.Ds

	// Frequency independent prefactor.
	pre := (pow2(p.N0a) + pow2(p.N0b)) *
		(o.Kolmogorov * p.Ww / (3 * math.Pow(kS, 2.0/3.0))) *
		pow2(o.FluidDensity/p.Rs) *
		(pow2(1+p.P0) / (math.Pow(p.F0, 5*p.P0) * math.Pow(p.V0, 5))) *
		math.Pow(o.Gravity, 7.0/3.0) *
		math.Pow(math.Sin(p.Aw), 7.0/3.0) *
		pow2(o.FrictionCoeff) *
		math.Pow(p.Hw, 7.0/3.0)

	power := make([]float64, len(fSeq))
	for i, fi := range fSeq {
		_, psi := attenuation(fi, p.R0, p.V0, p.Q0, p.F0, p.P0, p.E0)

		// Grain-size weighted turbulence transfer integral.
		phi := quad.Fixed(func(d float64) float64 {
			a := pow2(1 / (1 + math.Pow(2*fi*d/uP0, 4.0/3.0)))
			b := raisedCosineDensity(d, p.Ds, s) * pow2(d)
			return a * b
		}, dLo, dHi, o.QuadPoints, nil, 0)

		power[i] = pre * zeta * psi * phi * math.Pow(fi, 4.0/3.0+5*p.P0)
	}

	return &Spectrum{Frequency: fSeq, Power: power}, nil
}
