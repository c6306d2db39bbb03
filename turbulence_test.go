package fluvial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gimbertExample() ParameterSet {
	return ParameterSet{
		Ds: 0.03, Ss: 1.35, Rs: 2650,
		Hw: 0.8, Ww: 40, Aw: 0.0075,
		Fmin: 1, Fmax: 100,
		R0: 10, F0: 1, Q0: 10, V0: 2175, P0: 0.48, E0: 0,
		N0a: 0.6, N0b: 0.8,
		Res: 200,
	}
}

func TestModelTurbulence(t *testing.T) {
	a := assert.New(t)

	p := gimbertExample()
	spec, err := ModelTurbulence(p, nil, nil)
	a.NoError(err)
	a.Len(spec.Frequency, p.Res)
	a.Len(spec.Power, p.Res)

	a.InDelta(p.Fmin, spec.Frequency[0], 1e-9)
	a.InDelta(p.Fmax, spec.Frequency[p.Res-1], 1e-6)

	for i, pw := range spec.Power {
		a.False(math.IsNaN(pw), "power at frequency %g", spec.Frequency[i])
		a.True(pw > 0)
	}
}

func TestModelTurbulenceLogSpacing(t *testing.T) {
	a := assert.New(t)

	p := gimbertExample()
	p.Res = 3
	spec, err := ModelTurbulence(p, []float64{1, 100}, nil)
	a.NoError(err)
	// Log spacing puts the middle point at the geometric mean.
	a.InDelta(10, spec.Frequency[1], 1e-6)
}

func TestModelTurbulenceExplicitVector(t *testing.T) {
	a := assert.New(t)

	p := gimbertExample()
	f := []float64{2, 7, 13, 52}
	spec, err := ModelTurbulence(p, f, nil)
	a.NoError(err)
	a.Equal(f, spec.Frequency)
	a.Len(spec.Power, len(f))
}

func TestModelTurbulenceZeroDenominators(t *testing.T) {
	for _, mod := range []func(*ParameterSet){
		func(p *ParameterSet) { p.Q0 = 0 },
		func(p *ParameterSet) { p.F0 = 0 },
		func(p *ParameterSet) { p.V0 = 0 },
	} {
		p := gimbertExample()
		mod(&p)
		_, err := ModelTurbulence(p, nil, nil)
		var derr *DomainError
		assert.ErrorAs(t, err, &derr)
	}
}

func TestModelTurbulenceDepthScaling(t *testing.T) {
	a := assert.New(t)

	// Deeper flow carries more turbulent energy.
	shallow := gimbertExample()
	shallow.Hw = 0.5
	deep := gimbertExample()
	deep.Hw = 2.0

	ps, err := ModelTurbulence(shallow, nil, nil)
	a.NoError(err)
	pd, err := ModelTurbulence(deep, nil, nil)
	a.NoError(err)

	sumS := 0.0
	sumD := 0.0
	for i := range ps.Power {
		sumS += ps.Power[i]
		sumD += pd.Power[i]
	}
	a.True(sumD > sumS)
}
